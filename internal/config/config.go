package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	Session  SessionConfig
	Seed     SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SessionConfig holds session configuration
type SessionConfig struct {
	// TTL is the sliding inactivity window. Every authenticated request
	// pushes the session's expiration this far into the future.
	TTL time.Duration
	// CleanupSchedule is the cron spec for purging expired sessions.
	CleanupSchedule string
}

// SeedConfig holds the default operator account seeded on first start
type SeedConfig struct {
	OperatorEmail    string
	OperatorPhone    string
	OperatorPassword string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		Session:  loadSessionConfig(),
		Seed:     loadSeedConfig(),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "driveline"),
	}
}

// loadSessionConfig loads session config
func loadSessionConfig() SessionConfig {
	ttlMins, _ := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "60"))
	if ttlMins <= 0 {
		ttlMins = 60
	}

	return SessionConfig{
		TTL:             time.Duration(ttlMins) * time.Minute,
		CleanupSchedule: getEnv("SESSION_CLEANUP_CRON", "@hourly"),
	}
}

// loadSeedConfig loads the default operator account config
func loadSeedConfig() SeedConfig {
	return SeedConfig{
		OperatorEmail:    getEnv("SEED_OPERATOR_EMAIL", "operator@driveline.local"),
		OperatorPhone:    getEnv("SEED_OPERATOR_PHONE", "+70000000000"),
		OperatorPassword: getEnv("SEED_OPERATOR_PASSWORD", "changeme123"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
