// Package config handles loading and validating application configuration.
//
// Every setting has a default, so the program runs with no configuration
// at all. Values can be overridden from two sources (in priority order):
//  1. Environment variables, e.g. RESULTS_CAPACITY=20
//  2. An optional YAML file, named by CONFIG_PATH or the --config flag
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "local", "dev", "prod"
	Env string `yaml:"env" env:"RESULTS_ENV" env-default:"local" validate:"oneof=local dev prod"`

	// Capacity is the fixed number of student slots in the record store.
	Capacity int `yaml:"capacity" env:"RESULTS_CAPACITY" env-default:"10" validate:"min=1"`

	Storage `yaml:"storage"`
}

// Storage selects the record store backend.
type Storage struct {
	// Driver is "memory" (slice-backed) or "sqlite" (in-memory SQLite).
	// Neither keeps anything once the process exits.
	Driver string `yaml:"driver" env:"RESULTS_STORAGE_DRIVER" env-default:"memory" validate:"oneof=memory sqlite"`
}

// Storage driver names.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Load reads the YAML file at path (if path is not empty) plus the
// environment, applies defaults and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
	} else {
		// Check first so a typo in the path gives a clear message rather
		// than a cryptic "open: no such file" from the YAML reader.
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad is Load for program start-up: it exits the process when the
// configuration cannot be loaded. If this returns, the config is valid.
func MustLoad(path string) *Config {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}
	return cfg
}
