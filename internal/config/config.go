package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	SyncWorkerCount   int
	SyncQueueSize     int
	SyncMaxRetries    int
	DueLimit          int
	SessionMaxIdleMin int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:koda.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		SyncWorkerCount:   envIntOr("SYNC_WORKER_COUNT", 2),
		SyncQueueSize:     envIntOr("SYNC_QUEUE_SIZE", 64),
		SyncMaxRetries:    envIntOr("SYNC_MAX_RETRIES", 5),
		DueLimit:          envIntOr("DUE_LIMIT", 20),
		SessionMaxIdleMin: envIntOr("SESSION_MAX_IDLE_MIN", 60),
	}
}

// Validate checks the configuration, collecting every problem into one error.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.SyncWorkerCount < 1 {
		problems = append(problems, fmt.Sprintf("SYNC_WORKER_COUNT must be at least 1 (got %d)", c.SyncWorkerCount))
	}
	if c.SyncQueueSize < 1 {
		problems = append(problems, fmt.Sprintf("SYNC_QUEUE_SIZE must be at least 1 (got %d)", c.SyncQueueSize))
	}
	if c.SyncMaxRetries < 0 {
		problems = append(problems, fmt.Sprintf("SYNC_MAX_RETRIES cannot be negative (got %d)", c.SyncMaxRetries))
	}
	if c.DueLimit < 0 {
		problems = append(problems, fmt.Sprintf("DUE_LIMIT cannot be negative (got %d)", c.DueLimit))
	}
	if c.SessionMaxIdleMin < 1 {
		problems = append(problems, fmt.Sprintf("SESSION_MAX_IDLE_MIN must be at least 1 (got %d)", c.SessionMaxIdleMin))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
