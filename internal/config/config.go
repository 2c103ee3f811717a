// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the matching service.
type Config struct {
	Port           string
	DatabaseURL    string
	RedisURL       string
	CronSpecDaily  string // daily alert digest, e.g. "0 9 * * *"
	CronSpecWeekly string // weekly alert digest, e.g. "0 9 * * 1"
}

// Load reads environment variables (and a .env file if present) and returns
// a validated Config. godotenv never overrides variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	port := os.Getenv("MATCHING_PORT")
	if port == "" {
		port = "8083"
	}

	daily := os.Getenv("CRON_SPEC_DAILY")
	if daily == "" {
		daily = "0 9 * * *"
	}

	weekly := os.Getenv("CRON_SPEC_WEEKLY")
	if weekly == "" {
		weekly = "0 9 * * 1"
	}

	return &Config{
		Port:           port,
		DatabaseURL:    dbURL,
		RedisURL:       redisURL,
		CronSpecDaily:  daily,
		CronSpecWeekly: weekly,
	}, nil
}
