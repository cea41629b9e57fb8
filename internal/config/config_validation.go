package config

import "strings"

// defaults applied by validate for fields no source populated.
const (
	defaultRequestTimeout  = "15s"
	defaultRefreshInterval = "10m"
	defaultCallbackAddress = "localhost:53682"
)

// validate checks that the final merged [ClientConfig] satisfies all
// application invariants before it is used at startup, filling documented
// defaults for the optional fields.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *ClientConfig) validate() error {
	if cfg.API.BaseURL == "" {
		return ErrInvalidAPIConfigs
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.API.RequestTimeout == 0 {
		cfg.API.RequestTimeout = mustDuration(defaultRequestTimeout)
	}

	if cfg.Workers.RefreshInterval == 0 {
		cfg.Workers.RefreshInterval = mustDuration(defaultRefreshInterval)
	}

	if cfg.Callback.Address == "" {
		cfg.Callback.Address = defaultCallbackAddress
	}

	return nil
}
