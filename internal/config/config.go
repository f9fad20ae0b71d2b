// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration for the tradewinds binary.
type Config struct {
	// Port for the HTTP API; 0 disables serving.
	Port int `env:"TRADEWINDS_PORT" envDefault:"8080"`
	// DBPath is the SQLite reference database location.
	DBPath string `env:"TRADEWINDS_DB" envDefault:"data/tradewinds.db"`
	// LogLevel: debug, info, warn, error.
	LogLevel string `env:"TRADEWINDS_LOG_LEVEL" envDefault:"info"`
	// Season is the default season for one-shot calculations.
	Season string `env:"TRADEWINDS_SEASON" envDefault:"spring"`
	// Seed fixes the random source; 0 uses crypto randomness.
	Seed uint64 `env:"TRADEWINDS_SEED" envDefault:"0"`
	// NoEquilibrium disables the supply/demand enhancement layer.
	NoEquilibrium bool `env:"TRADEWINDS_NO_EQUILIBRIUM" envDefault:"false"`
	// Merchants overrides the per-size merchant count table with a flat count
	// for every role and settlement size; 0 keeps the default table.
	Merchants int `env:"TRADEWINDS_MERCHANTS" envDefault:"0"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}
	return cfg, nil
}
