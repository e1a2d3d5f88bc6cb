package main

import (
	"testing"
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func validConfig() *config.Config {
	return &config.Config{
		Environment: config.Development,
		Server: config.ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database:    config.DatabaseConfig{Driver: "sqlite", Path: "bookkeeping.db"},
		Logger:      config.LoggerConfig{Level: "info"},
		Transaction: config.TransactionConfig{LockTimeoutMs: 5000, LockBackend: "database"},
		Auth:        config.AuthConfig{JWTSecret: "secret"},
	}
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validConfig()))

	testCases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"MissingPort", func(c *config.Config) { c.Server.Port = 0 }},
		{"UnknownDriver", func(c *config.Config) { c.Database.Driver = "oracle" }},
		{"PostgresWithoutHost", func(c *config.Config) { c.Database.Driver = "postgres" }},
		{"MissingSecret", func(c *config.Config) { c.Auth.JWTSecret = "" }},
		{"RedisWithoutAddr", func(c *config.Config) { c.Transaction.LockBackend = "redis" }},
		{"UnknownEnvironment", func(c *config.Config) { c.Environment = "staging" }},
		{"NoLockTimeout", func(c *config.Config) { c.Transaction.LockTimeoutMs = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestValidateConfigMemoryDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database = config.DatabaseConfig{Driver: "memory"}
	cfg.Transaction.LockBackend = "memory"
	assert.NoError(t, validateConfig(cfg))
}
