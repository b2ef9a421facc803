// Package config loads pipeline settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every externally-supplied setting. It is built once
// in main and passed by value to component constructors.
type Config struct {
	// Database
	RawDatabaseURL       string // source tables
	ProcessedDatabaseURL string // destination schema; defaults to RawDatabaseURL

	// Pipeline tunables
	Schema          string
	BatchSize       int
	ConcurrentLimit int // metadata fetch fan-out bound

	// Retry schedule
	MaxRetries   int
	RetryBackoff time.Duration

	// Token metadata service
	HeliusAPIKey string
	HeliusURL    string

	// Observability
	MetricsAddr string // empty disables the listener
}

// Load reads a .env file if present, then the environment.
func Load() Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	raw := getEnv("DATABASE_URL", "")
	return Config{
		RawDatabaseURL:       raw,
		ProcessedDatabaseURL: getEnv("PROCESSED_DATABASE_URL", raw),

		Schema:          getEnv("PIPELINE_SCHEMA", "processed"),
		BatchSize:       getIntEnv("BATCH_SIZE", 1000),
		ConcurrentLimit: getIntEnv("CONCURRENT_LIMIT", 10),

		MaxRetries:   getIntEnv("MAX_RETRIES", 3),
		RetryBackoff: getDurationEnv("RETRY_BACKOFF", 5*time.Second),

		HeliusAPIKey: getEnv("HELIUS_API_KEY", ""),
		HeliusURL:    getEnv("HELIUS_URL", "https://api.helius.xyz/v0/token-metadata"),

		MetricsAddr: getEnv("METRICS_ADDR", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
