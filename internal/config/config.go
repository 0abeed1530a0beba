package config

import (
	"fmt"
	"os"
	"strconv"
)

// MinSecretLength is the minimum accepted length of FOLIO_SECRET.
// Session tokens are signed with it, so short values are rejected outright.
const MinSecretLength = 32

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port      string
	PublicURL string

	// Secret used to sign session tokens
	Secret string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Media storage
	UploadDir string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		PublicURL:         getEnv("PUBLIC_URL", "http://localhost:3000"),
		Secret:            getEnv("FOLIO_SECRET", ""),
		DBType:            getEnv("DB_TYPE", "mysql"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
	}

	// Validate required fields
	if cfg.Secret == "" {
		return nil, fmt.Errorf("FOLIO_SECRET is required")
	}
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("FOLIO_SECRET must be at least %d characters", MinSecretLength)
	}
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBUser == "" && cfg.DBType != "sqlite" {
		return nil, fmt.Errorf("DB_USER is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
