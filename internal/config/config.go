// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration. Every field is populated from
// the environment; constructors receive it explicitly instead of reading
// globals.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Database (PostgreSQL)
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"favoritesdb"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Token issuance
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"change-me"`
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME" envDefault:"30m"`

	// Upstream product catalog
	CatalogBaseURL string        `env:"CATALOG_BASE_URL" envDefault:"https://fakestoreapi.com"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"3s"`

	// Optional Kafka event publishing; empty disables it
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
