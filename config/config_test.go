package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/accounting-time/config"
	"github.com/warp/accounting-time/unitoftime"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, config.StorageSQLite, cfg.Storage)
	assert.Equal(t, "accounting.db", cfg.DBPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, unitoftime.GranularityMonth, cfg.DefaultRollup)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ACCTIME_ADDR", ":9090")
	t.Setenv("ACCTIME_STORAGE", "memory")
	t.Setenv("ACCTIME_LOG_FORMAT", "json")
	t.Setenv("ACCTIME_LOG_LEVEL", "debug")
	t.Setenv("ACCTIME_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ACCTIME_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("ACCTIME_DEFAULT_ROLLUP", "quarter")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, config.StorageMemory, cfg.Storage)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, unitoftime.GranularityQuarter, cfg.DefaultRollup)
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string][2]string{
		"unknown storage":      {"ACCTIME_STORAGE", "postgres"},
		"unknown log format":   {"ACCTIME_LOG_FORMAT", "xml"},
		"unknown log level":    {"ACCTIME_LOG_LEVEL", "loud"},
		"negative rate limit":  {"ACCTIME_RATE_LIMIT", "-1"},
		"unknown granularity":  {"ACCTIME_DEFAULT_ROLLUP", "week"},
		"malformed duration":   {"ACCTIME_READ_TIMEOUT", "soon"},
		"empty sqlite db path": {"ACCTIME_DB_PATH", ""},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		logger := config.NewLogger(&config.Config{LogFormat: format, LogLevel: "warn"})
		require.NotNil(t, logger)
	}
	assert.NotNil(t, config.NewLogger(nil))
}
