// Package config loads bookstore configuration from the environment.
//
// Flags take precedence over environment variables; the CLI layer
// applies overrides after calling Load.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds process-level settings for the bookstore tool.
type Config struct {
	// DatabasePath is the SQLite database file backing the three
	// record stores. Created on first run if absent.
	DatabasePath string `env:"BOOKSTORE_DB" envDefault:"bookstore.db"`

	// RootPassword is the password assigned to the root account when
	// it is seeded on first run. Changing it later has no effect on an
	// existing root account.
	RootPassword string `env:"BOOKSTORE_ROOT_PASSWORD" envDefault:"sjtu"`

	// Verbose enables debug-level logging.
	Verbose bool `env:"BOOKSTORE_VERBOSE" envDefault:"false"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
