package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./plume.db", cfg.DatabasePath)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 30, cfg.EventRetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.EventPruneSchedule)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/panel.db")
	t.Setenv("APP_ENV", "production")
	t.Setenv("EVENT_RETENTION_DAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "/tmp/panel.db", cfg.DatabasePath)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, 7, cfg.EventRetentionDays)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsInvalidRetention(t *testing.T) {
	t.Setenv("EVENT_RETENTION_DAYS", "soon")

	_, err := Load()
	assert.Error(t, err)
}
