package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	tartanURL     = "https://tartan.plaid.com"
	productionURL = "https://api.plaid.com"
)

// Config holds all configuration for the CLI.
type Config struct {
	PlaidClientID string
	PlaidSecret   string
	PlaidEnv      string
	ServiceURL    string
	LogLevel      string
}

// Load loads environment variables into the Config struct.
func Load() (*Config, error) {
	// Load from .env file if present (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PlaidClientID: mustEnv("PLAID_CLIENT_ID"),
		PlaidSecret:   mustEnv("PLAID_SECRET"),
		PlaidEnv:      getEnv("PLAID_ENV", "tartan"), // tartan | production
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.PlaidEnv {
	case "tartan":
		cfg.ServiceURL = tartanURL
	case "production":
		cfg.ServiceURL = productionURL
	default:
		return nil, fmt.Errorf("unknown PLAID_ENV %q", cfg.PlaidEnv)
	}

	return cfg, nil
}

// mustEnv returns the value of the env var or panics if missing.
func mustEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("missing required environment variable: %s", key))
	}
	return val
}

// getEnv returns the env var value or default if unset.
func getEnv(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}
