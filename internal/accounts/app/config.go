package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer string // Issuer claim for session tokens (default: gymloop-accounts)

	DatabaseFile        string        // Path to SQLite database file (default: ./accounts.db)
	PepperFile          string        // Path to file containing pepper for password hashing (default: ./pepper)
	AccessTokenTTL      time.Duration // Session token lifetime (default: 1h)
	AdminUsername       string        // Optional: seed admin username for a fresh database
	AdminPassword       string        // Optional: seed admin password for a fresh database
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("ACCOUNTS_ISSUER", "gymloop-accounts"),
		DatabaseFile:        getEnvOrDefault("ACCOUNTS_DATABASE_FILE", "accounts.db"),
		PepperFile:          getEnvOrDefault("ACCOUNTS_PEPPER_FILE", "pepper"),
		AccessTokenTTL:      getEnvDurationOrDefault("ACCESS_TOKEN_TTL", time.Hour),
		AdminUsername:       os.Getenv("ACCOUNTS_ADMIN_USERNAME"),
		AdminPassword:       os.Getenv("ACCOUNTS_ADMIN_PASSWORD"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
