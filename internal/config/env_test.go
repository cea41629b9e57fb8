package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VERSION": "1.4.0",

		"API_BASE_URL":        "https://api.mcmarket.example",
		"API_REQUEST_TIMEOUT": "30s",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_DATABASE_URI": "/home/user/.mcmarket/client.db",

		"CALLBACK_ADDRESS": "localhost:53682",

		"WORKERS_REFRESH_INTERVAL": "5m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "1.4.0", cfg.App.Version)
	assert.Equal(t, "https://api.mcmarket.example", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "/home/user/.mcmarket/client.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:53682", cfg.Callback.Address)
	assert.Equal(t, 5*time.Minute, cfg.Workers.RefreshInterval)
}

func TestParseEnv_EmptyEnvironment(t *testing.T) {
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Empty(t, cfg.API.BaseURL)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Zero(t, cfg.API.RequestTimeout)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"API_REQUEST_TIMEOUT": "not-a-duration",
	})

	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
