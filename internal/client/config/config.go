// Package config assembles runtime settings for the RecallAI client from
// defaults, an optional JSON file, and command-line flags, in that order of
// precedence.
package config

import "time"

// Config holds runtime settings for the RecallAI client.
//
// Fields:
//   - ServerBaseURL: base URL of the RecallAI backend.
//   - DatabasePath: path to the local SQLite state database.
//   - RequestTimeout: per-request timeout for backend calls.
//
// Product constants (access code, session duration, upload limits) are fixed
// in internal/common and are not configurable.
type Config struct {
	ServerBaseURL  string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.DatabasePath = "recallai.db"
	c.RequestTimeout = 60 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags. Later
// sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
