package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Levels(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("hidden id=%d", 1)
	log.Warn("visible id=%d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible id=2")
	assert.Contains(t, out, `"level":"warn"`)
}

func TestParseLevel_Unknown(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, "verbose")
	assert.Error(t, err)
}
