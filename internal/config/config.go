// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// SlotResolution is the default number of slots per duty-status grid
	// when a view request does not specify one. Must be a positive divisor
	// of 1440. Defaults to 24 (hourly slots).
	SlotResolution int

	// ReconcileTolerance is the allowed divergence, in whole minutes, between
	// a log's persisted per-status totals and the totals recomputed from its
	// events before a mismatch is reported. Defaults to 1.
	ReconcileTolerance int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// naming the first variable with an invalid value.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	resolution, err := getEnvInt("SLOT_RESOLUTION", 24)
	if err != nil {
		return Config{}, err
	}
	if resolution <= 0 || 1440%resolution != 0 {
		return Config{}, fmt.Errorf("SLOT_RESOLUTION must be a positive divisor of 1440, got %d", resolution)
	}
	cfg.SlotResolution = resolution

	tolerance, err := getEnvInt("RECONCILE_TOLERANCE_MINUTES", 1)
	if err != nil {
		return Config{}, err
	}
	if tolerance < 0 {
		return Config{}, fmt.Errorf("RECONCILE_TOLERANCE_MINUTES must not be negative, got %d", tolerance)
	}
	cfg.ReconcileTolerance = tolerance

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns the integer value of the environment variable named by
// key, or fallback if the variable is not set or is empty.
func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
