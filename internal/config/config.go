// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Data source kinds for the price history loader.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Config holds application configuration
type Config struct {
	Port       int
	LogLevel   string
	DevMode    bool
	DataSource string // csv or sqlite
	PricesFile string // CSV price table path (DataSource == csv)
	PricesDB   string // SQLite history database path (DataSource == sqlite)
}

// Load reads configuration from environment variables, with .env as a
// fallback for development.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	pricesFile, err := filepath.Abs(getEnv("PRICES_FILE", "data/nifty_50.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve prices file path: %w", err)
	}

	pricesDB, err := filepath.Abs(getEnv("PRICES_DB", "data/history.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve prices database path: %w", err)
	}

	cfg := &Config{
		Port:       getEnvAsInt("PORT", 5001),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DevMode:    getEnvAsBool("DEV_MODE", false),
		DataSource: getEnv("DATA_SOURCE", SourceCSV),
		PricesFile: pricesFile,
		PricesDB:   pricesDB,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.DataSource != SourceCSV && c.DataSource != SourceSQLite {
		return fmt.Errorf("invalid data source %q (expected %s or %s)", c.DataSource, SourceCSV, SourceSQLite)
	}
	return nil
}

// getEnv retrieves an environment variable value, returning a fallback if
// the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvAsBool retrieves an environment variable as a boolean
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
