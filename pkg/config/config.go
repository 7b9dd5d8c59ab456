package config

import (
	"os"
	"path/filepath"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Logging  LoggingConfig
}

type DatabaseConfig struct {
	// Path to the SQLite database file. The parent directory is created on
	// first open.
	Path string
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Path: getEnv("LEDGER_DB_PATH", defaultDBPath()),
		},
		Logging: LoggingConfig{
			Level: getEnv("LEDGER_LOG_LEVEL", "info"),
		},
	}
	return cfg, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "finance.db"
	}
	return filepath.Join(home, ".penny-ledger", "finance.db")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
