package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benrueckert/koda-flashcard-app/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		DBPath:            "test.db",
		LogLevel:          "INFO",
		SyncWorkerCount:   2,
		SyncQueueSize:     64,
		SyncMaxRetries:    5,
		DueLimit:          20,
		SessionMaxIdleMin: 60,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		ok    bool
	}{
		{"DEBUG", true},
		{"INFO", true},
		{"WARN", true},
		{"ERROR", true},
		{"debug", true}, // case-insensitive
		{"INVALID", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_InvalidWorkerSettings(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "zero sync workers",
			mutate:        func(c *config.Config) { c.SyncWorkerCount = 0 },
			expectedError: "SYNC_WORKER_COUNT",
		},
		{
			name:          "negative sync workers",
			mutate:        func(c *config.Config) { c.SyncWorkerCount = -1 },
			expectedError: "SYNC_WORKER_COUNT",
		},
		{
			name:          "zero sync queue",
			mutate:        func(c *config.Config) { c.SyncQueueSize = 0 },
			expectedError: "SYNC_QUEUE_SIZE",
		},
		{
			name:          "negative retries",
			mutate:        func(c *config.Config) { c.SyncMaxRetries = -1 },
			expectedError: "SYNC_MAX_RETRIES",
		},
		{
			name:          "negative due limit",
			mutate:        func(c *config.Config) { c.DueLimit = -1 },
			expectedError: "DUE_LIMIT",
		},
		{
			name:          "zero idle timeout",
			mutate:        func(c *config.Config) { c.SessionMaxIdleMin = 0 },
			expectedError: "SESSION_MAX_IDLE_MIN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		Addr:              "",
		DBPath:            "",
		LogLevel:          "INVALID",
		SyncWorkerCount:   0,
		SyncQueueSize:     0,
		SyncMaxRetries:    -1,
		DueLimit:          -1,
		SessionMaxIdleMin: 0,
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "SYNC_WORKER_COUNT")
	assert.Contains(t, errStr, "SYNC_QUEUE_SIZE")
	assert.Contains(t, errStr, "SYNC_MAX_RETRIES")
	assert.Contains(t, errStr, "DUE_LIMIT")
	assert.Contains(t, errStr, "SESSION_MAX_IDLE_MIN")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("SYNC_WORKER_COUNT", "4")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.SyncWorkerCount)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "SYNC_WORKER_COUNT", "DUE_LIMIT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 20, cfg.DueLimit)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("SYNC_QUEUE_SIZE", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, 64, cfg.SyncQueueSize)
}
