package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Server.Debug())
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, 24*time.Hour, cfg.JWT.GetExpiry())
	assert.False(t, cfg.Search.Enabled)
	assert.True(t, cfg.Scheduler.LeaseExpiryEnabled)
	assert.Equal(t, "02:00", cfg.Scheduler.DailyRunTime)
}

func TestLoadConfigMissingFileFallsBack(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: "9090"
  mode: "debug"
database:
  type: "postgres"
scheduler:
  daily_run_time: "03:30"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Server.Debug())
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "03:30", cfg.Scheduler.DailyRunTime)

	// Values the file does not set keep their defaults.
	assert.Equal(t, 3306, cfg.Database.MySQL.Port)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
