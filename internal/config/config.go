package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	JWTSecret          string
	SessionIdleTimeout time.Duration

	// Login lockout
	LockoutThreshold int
	LockoutDuration  time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "fcts"),
		DBPassword: getEnv("DB_PASSWORD", "fcts"),
		DBName:     getEnv("DB_NAME", "con_system"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Sessions
		JWTSecret:          getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		SessionIdleTimeout: getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),

		// Lockout
		LockoutThreshold: getEnvInt("LOCKOUT_THRESHOLD", 5),
		LockoutDuration:  getEnvDuration("LOCKOUT_DURATION", 15*time.Minute),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvDuration retrieves a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}
