package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a remote API base URL
//	-d local database file path
//	-callback-address verification-return listener address in format [host]:[port]
//	-request-timeout outbound request timeout (e.g., "15s", "1m")
//	-refresh-interval session refresh period (e.g., "10m")
//	-c/-config json file path with configs
func ParseFlags() *ClientConfig {
	var apiBaseURL string
	var databaseDSN string
	var callbackAddress string
	var requestTimeout time.Duration
	var refreshInterval time.Duration
	var jsonConfigPath string

	flag.StringVar(&apiBaseURL, "a", "", "Remote API base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database file path")
	flag.StringVar(&callbackAddress, "callback-address", "", "Verification callback listener host:port")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Session refresh period (e.g., 10m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &ClientConfig{
		API: API{
			BaseURL:        apiBaseURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Callback: Callback{
			Address: callbackAddress,
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
