package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort       int
	DatabaseDriver   string // "sqlite" or "postgres"
	DatabaseDSN      string
	JWTSecret        string
	AllowedOrigin    string
	SSLCertFile      string
	SSLKeyFile       string
	SeedDemoData     bool
	SnapshotSchedule string // standard cron expression for the content snapshot job
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "3000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:       port,
		DatabaseDriver:   getEnv("DB_DRIVER", "sqlite"),
		DatabaseDSN:      getEnv("DB_DSN", "./conduit.db"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		AllowedOrigin:    getEnv("ALLOWED_ORIGIN", "http://localhost:4200"),
		SSLCertFile:      getEnv("SSL_CERT_FILE", ""),
		SSLKeyFile:       getEnv("SSL_KEY_FILE", ""),
		SeedDemoData:     getEnv("SEED_DEMO_DATA", "false") == "true",
		SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "@every 15m"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must not be empty")
	}

	return cfg, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
