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

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("REDIS_PASSWORD", "")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 60, cfg.Engine.RecommendEveryMinutes)
}

func TestLoadOverridesAndEnv(t *testing.T) {
	t.Setenv("ESTATE_DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("REDIS_PASSWORD", "r3dis")

	cfg, err := Load(writeConfig(t, `
[server]
http_port = 9090

[database]
driver = "postgres"
host = "${ESTATE_DB_HOST}"
password = "from-file"

[redis]
locker = "redis"
addr = "redis:6379"

[engine]
timezone = "Europe/Paris"
min_notice_minutes = 120
advance_booking_days = 365

[notifier]
url = "http://crm.local/hooks/reservations"
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "r3dis", cfg.Redis.Password)
	assert.Equal(t, LockerRedis, cfg.Redis.Locker)
	assert.Equal(t, 120, cfg.Engine.MinNoticeMinutes)
	assert.Equal(t, "http://crm.local/hooks/reservations", cfg.Notifier.URL)
	// Не заданные в файле значения остаются по умолчанию
	assert.Equal(t, 15, cfg.Server.ReadTimeout)

	loc, err := cfg.Engine.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", loc.String())

	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "[database]\ndriver = \"mysql\""},
		{"unknown locker", "[redis]\nlocker = \"etcd\""},
		{"bad timezone", "[engine]\ntimezone = \"Mars/Olympus\""},
		{"negative notice", "[engine]\nmin_notice_minutes = -5"},
		{"bad port", "[server]\nhttp_port = 70000"},
		{"malformed toml", "[server\nhttp_port = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
