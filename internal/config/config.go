// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string
	LogLevel    string
	LogFormat   string

	// SweepInterval is how often the overdue sweep runs.
	SweepInterval time.Duration
	// SweepGraceWindow is how far past its scheduled time a session may be
	// before the sweep cancels it.
	SweepGraceWindow time.Duration
	// CacheTTL is the safety-net expiry on cache entries; invalidation is
	// explicit, the TTL only bounds staleness after missed invalidations.
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	var err error
	if cfg.SweepInterval, err = getDurationEnv("SWEEP_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.SweepGraceWindow, err = getDurationEnv("SWEEP_GRACE_WINDOW", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDurationEnv("CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}

	if cfg.SweepInterval <= 0 {
		return nil, fmt.Errorf("SWEEP_INTERVAL must be positive")
	}
	if cfg.SweepGraceWindow <= 0 {
		return nil, fmt.Errorf("SWEEP_GRACE_WINDOW must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	return d, nil
}
