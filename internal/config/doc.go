// Package config loads runtime configuration for the Leish client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables (LEISH_API_URL, LEISH_REQUEST_TIMEOUT,
//     LEISH_DB_PATH, LEISH_LOG_LEVEL).
//  4. Command-line flags (-a, -t, -d), which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "request_timeout": "10s",
//	  "database_path": "leish.db",
//	  "log_level": "info"
//	}
package config
