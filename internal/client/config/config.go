// Package config assembles runtime settings for the EcoPoints CLI from
// defaults, an optional JSON file, environment variables and command-line
// flags, in that order; later sources win.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: path of the local SQLite session database.
type Config struct {
	APIBaseURL     string        `env:"ECOPOINTS_API_URL"`
	RequestTimeout time.Duration `env:"ECOPOINTS_REQUEST_TIMEOUT"`
	DatabasePath   string        `env:"ECOPOINTS_DB_PATH"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "ecopoints.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given), the environment, and command-line
// flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
