package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort         int
	DatabasePath       string
	JWTSecret          string
	AppEnv             string // "development" or "production"
	EventRetentionDays int
	EventPruneSchedule string // standard cron expression
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	retentionStr := getEnv("EVENT_RETENTION_DAYS", "30")
	retention, err := strconv.Atoi(retentionStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:         port,
		DatabasePath:       getEnv("DATABASE_PATH", "./plume.db"),
		JWTSecret:          getEnv("JWT_SECRET", "insecure-dev-secret"),
		AppEnv:             getEnv("APP_ENV", "development"),
		EventRetentionDays: retention,
		EventPruneSchedule: getEnv("EVENT_PRUNE_SCHEDULE", "0 3 * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
