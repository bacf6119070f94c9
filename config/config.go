// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/warp/accounting-time/unitoftime"
)

// Prefix is prepended to every variable name, e.g. ACCTIME_ADDR.
const Prefix = "ACCTIME"

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds runtime configuration for the server.
type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	Storage string `envconfig:"STORAGE" default:"sqlite"`
	DBPath  string `envconfig:"DB_PATH" default:"accounting.db"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	RateLimit   int           `envconfig:"RATE_LIMIT" default:"100"`
	RateWindow  time.Duration `envconfig:"RATE_WINDOW" default:"1m"`

	// DefaultRollup is used when a roll-up request names no granularity.
	DefaultRollup unitoftime.Granularity `envconfig:"DEFAULT_ROLLUP" default:"month"`
}

// Load reads configuration from ACCTIME_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot check on its own.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("config: unknown storage %q", c.Storage)
	}
	if c.Storage == StorageSQLite && c.DBPath == "" {
		return fmt.Errorf("config: %s_DB_PATH must be set for sqlite storage", Prefix)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: rate limit must not be negative")
	}
	if !c.DefaultRollup.Valid() {
		return fmt.Errorf("config: default roll-up granularity: %w", unitoftime.ErrInvalidGranularity)
	}
	return nil
}

// Usage prints the variables Load reads.
func Usage() error {
	var cfg Config
	return envconfig.Usage(Prefix, &cfg)
}
