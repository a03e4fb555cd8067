// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. Fine for local
// development, unacceptable in production; main warns when it is active.
const DefaultJWTSecret = "dev-secret-change-me"

// Config holds all server settings.
type Config struct {
	// Addr is the listen address.
	Addr string `env:"ADDR" envDefault:":8080"`

	// DBPath is the SQLite database file path.
	DBPath string `env:"DB_PATH" envDefault:"./data/albumz.db"`

	// JWTSecret signs session tokens.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is how long session tokens remain valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DefaultJWTSecret
	}
	return cfg, nil
}

// UsingDefaultSecret reports whether the insecure development secret is in use.
func (c *Config) UsingDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}
