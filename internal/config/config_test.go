package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "favoritesdb", cfg.DBName)
	assert.Equal(t, 30*time.Minute, cfg.TokenLifetime)
	assert.Equal(t, "https://fakestoreapi.com", cfg.CatalogBaseURL)
	assert.Equal(t, 3*time.Second, cfg.CatalogTimeout)
	assert.Empty(t, cfg.KafkaBrokers, "event publishing is disabled by default")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("TOKEN_LIFETIME", "1h")
	t.Setenv("CATALOG_BASE_URL", "http://catalog.internal")
	t.Setenv("CATALOG_TIMEOUT", "500ms")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenLifetime)
	assert.Equal(t, "http://catalog.internal", cfg.CatalogBaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.CatalogTimeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}
