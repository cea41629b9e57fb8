package config

import (
	"time"
)

// ClientConfig is the top-level configuration container for the marketplace
// client. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type ClientConfig struct {
	// App holds application-level settings such as the client version.
	App App `envPrefix:"APP_"`

	// API holds the remote marketplace API endpoint settings.
	API API `envPrefix:"API_"`

	// Storage holds the local SQLite database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Callback holds settings of the localhost listener that captures the
	// return redirect of the external identity-verification flow.
	Callback Callback `envPrefix:"CALLBACK_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running client
	// (e.g. "1.2.3"). Shown on the welcome screen.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// API holds the remote marketplace API endpoint settings.
type API struct {
	// BaseURL is the root URL of the marketplace API
	// (e.g. "https://api.mcmarket.example").
	// Env: API_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request before the client cancels it (e.g. "15s", "1m").
	// Env: API_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration of the local persistence layer.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database that keeps the
// session token, the cached identity, and the onboarding flags.
type DB struct {
	// DSN is the SQLite file path (e.g. "mcmarket.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Callback holds the verification-return listener settings.
type Callback struct {
	// Address is the TCP address the listener binds to, in "host:port"
	// format. It must be a loopback address; the external verification flow
	// redirects the browser back to it when identity proofing finishes.
	// Env: CALLBACK_ADDRESS
	Address string `env:"ADDRESS"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// RefreshInterval defines how often the session refresh job exchanges
	// the stored refresh token for a fresh token pair.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetClientConfig loads, merges, and validates the client configuration from
// all available sources in the following priority order (earlier sources win
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *ClientConfig or an error if any source fails to
// load or the final config fails validation.
func GetClientConfig() (*ClientConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
