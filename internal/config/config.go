package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/leish-app/leish-go/internal/flagx"
)

// Config holds the runtime settings of the Leish client.
//
// Fields:
//   - APIBaseURL: base URL of the Leish backend.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: location of the on-device SQLite store.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string        `envconfig:"LEISH_API_URL"`
	RequestTimeout time.Duration `envconfig:"LEISH_REQUEST_TIMEOUT"`
	DatabasePath   string        `envconfig:"LEISH_DB_PATH"`
	LogLevel       string        `envconfig:"LEISH_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://api.example.com"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "leish.db"
	c.LogLevel = "info"
}

// Load constructs a Config by applying defaults, then overlaying the JSON
// file (if one is given via -c/-config), environment variables, and finally
// command-line flags. Later sources take precedence.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, flagx.ConfigFileFlag()); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg, osArgs())

	return cfg, nil
}
