// Package config handles configuration for the client component, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Reelmark client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the sync server.
//   - DatabaseDSN: path of the local SQLite database file.
//   - SyncInterval: how often the sync scheduler runs a round.
//   - RequestTimeout: per-request deadline for server calls.
//   - ExecutorSize: concurrency limit of the background write pool.
type Config struct {
	ServerEndpointAddr string
	DatabaseDSN        string
	SyncInterval       time.Duration
	RequestTimeout     time.Duration
	ExecutorSize       int
}

// LoadDefaults populates Config with local development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080"
	c.DatabaseDSN = "reelmark.db"
	c.SyncInterval = time.Hour
	c.RequestTimeout = 15 * time.Second
	c.ExecutorSize = 4
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
