package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/apolyakov/reelmark/internal/flagx"
	"github.com/apolyakov/reelmark/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// Interval fields use timex.Duration so both "30s" strings and integer
// nanoseconds parse.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	DatabaseDSN        string         `json:"database_dsn"`
	SyncInterval       timex.Duration `json:"sync_interval"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	ExecutorSize       int            `json:"executor_size"`
}

// parseJson overlays values from the JSON file named by the -c/-config flag,
// if any. Absent fields keep their current values.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerEndpointAddr != "" {
		config.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SyncInterval.Duration != 0 {
		config.SyncInterval = time.Duration(c.SyncInterval.Duration)
	}
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	}
	if c.ExecutorSize != 0 {
		config.ExecutorSize = c.ExecutorSize
	}
}
