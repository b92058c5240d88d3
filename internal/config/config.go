package config

import (
	"os"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string
	TokenSecret  string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:   getEnv("PORT", "8080"),
		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./hanzirecall.db"),
		DatabaseURL:  getEnv("DB_URL", ""),
		TokenSecret:  getEnv("TOKEN_SECRET", "dev-only-secret"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
