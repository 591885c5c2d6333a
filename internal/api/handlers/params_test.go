package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	loc := time.FixedZone("clinic", 3*60*60)

	tests := []struct {
		value   string
		want    time.Time
		wantErr bool
	}{
		{value: "2030-01-14T10:00:00", want: time.Date(2030, 1, 14, 10, 0, 0, 0, loc)},
		{value: "2030-01-14T10:30", want: time.Date(2030, 1, 14, 10, 30, 0, 0, loc)},
		{value: "2030-01-14T07:00:00Z", want: time.Date(2030, 1, 14, 10, 0, 0, 0, loc)},
		{value: "2030-01-14", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseDateTime(tt.value, loc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, loc, got.Location())
		})
	}
}

func TestPathInt64(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{value: "42", want: 42},
		{value: "0", wantErr: true},
		{value: "-1", wantErr: true},
		{value: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest("GET", "/", nil), map[string]string{"id": tt.value})

			got, err := PathInt64(r, "id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondConflict(w, "занято")

	assert.Equal(t, 409, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":409,"message":"занято"}`, w.Body.String())
}
