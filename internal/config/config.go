// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int `env:"PORT" envDefault:"8080"`

	// DatabaseURL selects the sqlite database. Empty means the fixed
	// in-memory stub dataset is served instead.
	DatabaseURL string `env:"DATABASE_URL"`

	// LoadDelay is the simulated fetch latency of the stub source.
	LoadDelay time.Duration `env:"LOAD_DELAY" envDefault:"800ms"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
