// Package config loads collector settings. Every setting has a default, and
// with no environment variables set the collector runs with exactly those
// defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Sternrassler/bdr-collector/pkg/client"
	"github.com/Sternrassler/bdr-collector/pkg/logging"
	"github.com/Sternrassler/bdr-collector/pkg/storage"
)

// Environment variable names.
const (
	EnvBaseURL     = "BDR_BASE_URL"
	EnvOutputDir   = "BDR_OUTPUT_DIR"
	EnvUserAgent   = "BDR_USER_AGENT"
	EnvCacheTTL    = "BDR_CACHE_TTL"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogPretty   = "LOG_PRETTY"
	EnvRedisURL    = "REDIS_URL"
	EnvMetricsFile = "METRICS_FILE"
)

// Config holds the process configuration.
type Config struct {
	BaseURL   string
	OutputDir string
	UserAgent string

	LogLevel  logging.LogLevel
	LogPretty bool

	// RedisURL enables the page cache when set (host:port).
	RedisURL string
	CacheTTL time.Duration

	// MetricsFile receives a Prometheus text dump at exit when set.
	MetricsFile string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:   client.DefaultBaseURL,
		OutputDir: storage.DefaultDir,
		UserAgent: client.DefaultUserAgent,
		LogLevel:  logging.LevelDebug,
		LogPretty: true,
		CacheTTL:  client.DefaultCacheTTL,
	}
}

// Load returns Default overridden by any environment variables that are set.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	cfg.BaseURL = getEnv(getenv, EnvBaseURL, cfg.BaseURL)
	cfg.OutputDir = getEnv(getenv, EnvOutputDir, cfg.OutputDir)
	cfg.UserAgent = getEnv(getenv, EnvUserAgent, cfg.UserAgent)
	cfg.LogLevel = logging.LogLevel(getEnv(getenv, EnvLogLevel, string(cfg.LogLevel)))
	cfg.RedisURL = getEnv(getenv, EnvRedisURL, cfg.RedisURL)
	cfg.MetricsFile = getEnv(getenv, EnvMetricsFile, cfg.MetricsFile)

	if v := getenv(EnvLogPretty); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvLogPretty, err)
		}
		cfg.LogPretty = pretty
	}

	if v := getenv(EnvCacheTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvCacheTTL, err)
		}
		if ttl <= 0 {
			return Config{}, fmt.Errorf("%s must be > 0 (got %s)", EnvCacheTTL, ttl)
		}
		cfg.CacheTTL = ttl
	}

	return cfg, nil
}

func getEnv(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}
