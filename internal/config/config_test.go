package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "memory"

[identity_service]
url = "http://identity:8080"

[booking]
timezone = "Europe/Moscow"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, 31, cfg.Booking.MaxRangeDays)
	assert.Equal(t, 30, cfg.Booking.DefaultSlotMinutes)
	assert.Equal(t, uint32(5), cfg.IdentityService.Breaker.FailureThreshold)
	assert.Equal(t, "medical.appointments", cfg.Notifications.Exchange)
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "postgres"
host = "localhost"
port = 5432
user = "booking"
password = "from-file"
dbname = "medical"

[identity_service]
url = "http://identity:8080"
`)

	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvDBPassword, "from-env")

	cfg, err := Load("does-not-exist.toml")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "host=localhost port=5432 user=booking password=from-env dbname=medical sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown driver",
			content: `
[database]
driver = "mysql"
[identity_service]
url = "http://identity"
`,
		},
		{
			name: "postgres without host",
			content: `
[database]
driver = "postgres"
[identity_service]
url = "http://identity"
`,
		},
		{
			name: "missing identity url",
			content: `
[database]
driver = "memory"
`,
		},
		{
			name: "bad timezone",
			content: `
[database]
driver = "memory"
[identity_service]
url = "http://identity"
[booking]
timezone = "Mars/Olympus"
`,
		},
		{
			name: "notifications without url",
			content: `
[database]
driver = "memory"
[identity_service]
url = "http://identity"
[notifications]
enabled = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
