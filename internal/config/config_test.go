package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"productos/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.RequestLog)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DB_SEQUELIZE_URL", "file:test.db")
	t.Setenv("FRONTEND_URL", "https://shop.example.com")
	t.Setenv("REQUEST_LOG", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "file:test.db", cfg.DatabaseDSN)
	assert.Equal(t, "https://shop.example.com", cfg.FrontendURL)
	assert.False(t, cfg.RequestLog)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("APP_PORT=:7070\nLOG_FORMAT=json\n"), 0o600))

	cfg, err := config.Load(filepath.Join(dir, "missing.env"), envFile)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.AppPort)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
