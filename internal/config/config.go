package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Authorizer configuration
	AuthzURL      string
	AuthzClientID string

	// External generation/render/completion services
	GenAPIURL      string
	RenderAPIURL   string
	ChatAPIURL     string
	ChatAPIKey     string
	GenModel       string
	ChatModel      string
	ServiceTimeout int // seconds; renders can take a while
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            getEnv("DB_TYPE", "mysql"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		AuthzURL:          getEnv("AUTHZ_URL", ""),
		AuthzClientID:     getEnv("AUTHZ_CLIENT_ID", ""),
		GenAPIURL:         getEnv("GEN_API_URL", ""),
		RenderAPIURL:      getEnv("RENDER_API_URL", ""),
		ChatAPIURL:        getEnv("CHAT_API_URL", ""),
		ChatAPIKey:        getEnv("CHAT_API_KEY", ""),
		GenModel:          getEnv("GEN_MODEL", "gpt-4o"),
		ChatModel:         getEnv("CHAT_MODEL", "gpt-4o-mini"),
		ServiceTimeout:    getEnvAsInt("SERVICE_TIMEOUT", 120),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.AuthzURL == "" {
		return nil, fmt.Errorf("AUTHZ_URL is required")
	}
	if cfg.AuthzClientID == "" {
		return nil, fmt.Errorf("AUTHZ_CLIENT_ID is required")
	}
	if cfg.GenAPIURL == "" {
		return nil, fmt.Errorf("GEN_API_URL is required")
	}
	if cfg.RenderAPIURL == "" {
		return nil, fmt.Errorf("RENDER_API_URL is required")
	}
	if cfg.ChatAPIURL == "" {
		return nil, fmt.Errorf("CHAT_API_URL is required")
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
