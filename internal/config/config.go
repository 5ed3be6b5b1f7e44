// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config holds server configuration.
type Config struct {
	Port           int      `env:"PORT" envDefault:"5000"`
	DataFile       string   `env:"DI_DATA_FILE" envDefault:"dates.json"`
	StoreDriver    string   `env:"DI_STORE" envDefault:"file"`
	DBPath         string   `env:"DI_DB_PATH"`
	DevMode        bool     `env:"DI_DEV_MODE"`
	AllowedOrigins []string `env:"DI_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads an optional .env file from dotenvPath (skipped when empty or
// missing) and then parses the environment. Variables already set in the
// environment win over the file.
func Load(dotenvPath string) (Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", dotenvPath, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverFile, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q (want %s, %s or %s)", c.StoreDriver, DriverFile, DriverSQLite, DriverMemory)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}
