package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of environment variables overriding configuration
const EnvPrefix = "BV"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// envBindings maps configuration keys to the environment variables that override them
var envBindings = map[string]string{
	"server.host":               "BV_SERVER_HOST",
	"server.port":               "BV_SERVER_PORT",
	"database.driver":           "BV_DB_DRIVER",
	"database.host":             "BV_DB_HOST",
	"database.port":             "BV_DB_PORT",
	"database.username":         "BV_DB_USERNAME",
	"database.password":         "BV_DB_PASSWORD",
	"database.database":         "BV_DB_NAME",
	"database.sslMode":          "BV_DB_SSL_MODE",
	"database.path":             "BV_DB_PATH",
	"database.maxOpenConns":     "BV_DB_MAX_OPEN_CONNS",
	"database.maxIdleConns":     "BV_DB_MAX_IDLE_CONNS",
	"database.queryTimeout":     "BV_DB_QUERY_TIMEOUT_SECONDS",
	"database.retryAttempts":    "BV_DB_RETRY_ATTEMPTS",
	"database.retryDelay":       "BV_DB_RETRY_DELAY_SECONDS",
	"logger.level":              "BV_LOGGER_LEVEL",
	"logger.format":             "BV_LOGGER_FORMAT",
	"transaction.lockTimeoutMs": "BV_TRANSACTION_LOCK_TIMEOUT_MS",
	"transaction.lockBackend":   "BV_TRANSACTION_LOCK_BACKEND",
	"redis.addr":                "BV_REDIS_ADDR",
	"redis.password":            "BV_REDIS_PASSWORD",
	"redis.db":                  "BV_REDIS_DB",
	"auth.jwtSecret":            "BV_AUTH_JWT_SECRET",
	"auth.issuer":               "BV_AUTH_ISSUER",
	"rateLimit.enabled":         "BV_RATE_LIMIT_ENABLED",
	"rateLimit.rate":            "BV_RATE_LIMIT_RATE",
	"cors.allowedOrigins":       "BV_CORS_ALLOWED_ORIGINS",
	"metrics.enabled":           "BV_METRICS_ENABLED",
}

// LoadConfig reads configs/<env>.yaml, where env comes from BV_ENV and defaults to development.
// A .env file, when found, is loaded into the process environment first.
// Environment variables win over the file, and the file wins over defaults.
func LoadConfig() (*Config, error) {
	if path, err := loadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load %s: %v\n", path, err)
	}

	env := strings.ToLower(os.Getenv(EnvPrefix + "_ENV"))
	if env == "" {
		env = Development
	}

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s config: %w", env, err)
	}

	for key, name := range envBindings {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Environment = env
	applyDurationUnits(&cfg)

	return &cfg, nil
}

// loadDotEnv loads the first .env file found on DotEnvPaths. It is not an error when none exists.
func loadDotEnv() (string, error) {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return path, godotenv.Load(path)
	}
	return "", nil
}

// setDefaults covers every key a minimal config file may leave out
func setDefaults(v *viper.Viper) {
	defaults := map[string]any{
		"server.host":              "0.0.0.0",
		"server.port":              8080,
		"server.readTimeout":       15,
		"server.writeTimeout":      15,
		"server.idleTimeout":       60,
		"server.readHeaderTimeout": 10,
		"server.shutdownTimeout":   10,

		"database.driver":          "postgres",
		"database.port":            "5432",
		"database.sslMode":         "disable",
		"database.path":            "bookkeeping.db",
		"database.maxOpenConns":    25,
		"database.maxIdleConns":    10,
		"database.connMaxLifetime": 30,
		"database.connMaxIdleTime": 15,
		"database.queryTimeout":    5,
		"database.retryAttempts":   3,
		"database.retryDelay":      1,

		"logger.level":      "info",
		"logger.format":     "json",
		"logger.output":     "stdout",
		"logger.callerInfo": true,

		"transaction.lockTimeoutMs": 5000,
		"transaction.lockBackend":   "database",

		"redis.addr":      "localhost:6379",
		"redis.db":        0,
		"redis.keyPrefix": "bookkeeping:lock:",

		"auth.issuer": "bookkeeping",

		"rateLimit.enabled": true,
		"rateLimit.rate":    "120-M",

		"cors.allowedOrigins": []string{"http://localhost:3000"},

		"metrics.enabled": true,
		"metrics.path":    "/metrics",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// applyDurationUnits scales the bare integers read from config into durations
func applyDurationUnits(cfg *Config) {
	scale := func(d *time.Duration, unit time.Duration) { *d *= unit }

	scale(&cfg.Server.ReadTimeout, time.Second)
	scale(&cfg.Server.WriteTimeout, time.Second)
	scale(&cfg.Server.IdleTimeout, time.Second)
	scale(&cfg.Server.ReadHeaderTimeout, time.Second)
	scale(&cfg.Server.ShutdownTimeout, time.Second)

	scale(&cfg.Database.ConnMaxLifetime, time.Minute)
	scale(&cfg.Database.ConnMaxIdleTime, time.Minute)
	scale(&cfg.Database.QueryTimeout, time.Second)
	scale(&cfg.Database.RetryDelay, time.Second)
}
