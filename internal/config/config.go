// Package config reads the portal's settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	// SessionTTL is how long an untouched wizard survives. Zero keeps
	// wizards until they are submitted or deleted.
	SessionTTL    time.Duration `env:"WIZARD_SESSION_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"WIZARD_SWEEP_INTERVAL" envDefault:"1m"`
	StrictSteps   bool          `env:"WIZARD_STRICT_STEPS" envDefault:"false"`
	MaxMutations  int           `env:"WIZARD_MAX_MUTATIONS" envDefault:"500"`
}

// LoadDotEnv reads files into the environment without overriding variables
// that are already set. Missing files are reported, not fatal.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxMutations < 0 {
		return Config{}, fmt.Errorf("parse env: WIZARD_MAX_MUTATIONS must not be negative, got %d", cfg.MaxMutations)
	}
	if cfg.SessionTTL > 0 && cfg.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("parse env: WIZARD_SWEEP_INTERVAL must be positive when WIZARD_SESSION_TTL is set")
	}
	return cfg, nil
}
