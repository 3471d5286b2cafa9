// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything externally supplied: the listen port, the
// store DSN, and operational knobs with sensible defaults.
type Config struct {
	Port        int           `env:"PORT" envDefault:"8080"`
	DatabaseURL string        `env:"DATABASE_URL" envDefault:"data/accounts.db"`
	DBTimeout   time.Duration `env:"DB_TIMEOUT" envDefault:"5s"`
	LogLevel    slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"12"`

	// ShutdownTimeout is how long in-flight requests get to finish
	// after a termination signal.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load reads an optional .env file and parses the environment into a
// Config. A missing .env is not an error; explicit environment variables
// always win.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}
