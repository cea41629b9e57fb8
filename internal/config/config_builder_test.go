package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder_MergePriority(t *testing.T) {
	// Earlier sources win for non-zero fields: env values must survive a
	// later merge that carries different values for the same fields.
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&ClientConfig{
			API:     API{BaseURL: "https://api.mcmarket.example"},
			Storage: Storage{DB: DB{DSN: "env.db"}},
		},
		&ClientConfig{
			API:     API{BaseURL: "http://flags.example", RequestTimeout: 20 * time.Second},
			Storage: Storage{DB: DB{DSN: "flags.db"}},
		},
	)

	cfg, err := b.build()

	require.NoError(t, err)
	assert.Equal(t, "https://api.mcmarket.example", cfg.API.BaseURL)
	assert.Equal(t, "env.db", cfg.Storage.DB.DSN)
	// the flag-only field fills the gap left by env
	assert.Equal(t, 20*time.Second, cfg.API.RequestTimeout)
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ClientConfig
		wantErr error
	}{
		{
			name:    "missing base url",
			cfg:     ClientConfig{Storage: Storage{DB: DB{DSN: "client.db"}}},
			wantErr: ErrInvalidAPIConfigs,
		},
		{
			name:    "missing dsn",
			cfg:     ClientConfig{API: API{BaseURL: "http://localhost:8080"}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "in-memory dsn rejected",
			cfg: ClientConfig{
				API:     API{BaseURL: "http://localhost:8080"},
				Storage: Storage{DB: DB{DSN: ":memory:"}},
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "valid minimal config",
			cfg: ClientConfig{
				API:     API{BaseURL: "http://localhost:8080"},
				Storage: Storage{DB: DB{DSN: "client.db"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestClientConfig_Validate_Defaults(t *testing.T) {
	cfg := ClientConfig{
		API:     API{BaseURL: "http://localhost:8080"},
		Storage: Storage{DB: DB{DSN: "client.db"}},
	}

	require.NoError(t, cfg.validate())

	assert.Equal(t, 15*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Workers.RefreshInterval)
	assert.Equal(t, "localhost:53682", cfg.Callback.Address)
}
