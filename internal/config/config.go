// Package config handles application configuration via environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all configurable values for the app.
type Config struct {
	Env           string
	Port          string
	DBPath        string
	RelayEndpoint string
	BatchSize     int
	BatchInterval time.Duration
	RetryBackoff  time.Duration
}

// Load reads environment variables and populates a Config struct.
func Load() *Config {
	batchSize, err := strconv.Atoi(getEnv("BATCH_SIZE", "10"))
	if err != nil {
		log.Panicf("Invalid BATCH_SIZE: %v", err)
	}

	interval, err := time.ParseDuration(getEnv("BATCH_INTERVAL", "30s"))
	if err != nil {
		log.Panicf("Invalid BATCH_INTERVAL: %v", err)
	}

	backoff, err := time.ParseDuration(getEnv("RETRY_BACKOFF", "2s"))
	if err != nil {
		log.Panicf("Invalid RETRY_BACKOFF: %v", err)
	}

	return &Config{
		Env:           getEnv("ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "devotional.db"),
		RelayEndpoint: getEnv("RELAY_ENDPOINT", "http://localhost:9000/widget-refresh"),
		BatchSize:     batchSize,
		BatchInterval: interval,
		RetryBackoff:  backoff,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
