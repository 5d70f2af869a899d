// Package config provides centralized default values for BookHaven
package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err != nil {
			return
		}
		log.Println("Loaded configuration overrides from .env file")
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port                  string
	ServerReadTimeout     time.Duration
	ServerWriteTimeout    time.Duration
	ServerIdleTimeout     time.Duration
	ServerShutdownTimeout time.Duration

	// Remote account service (consumed by the gateway, opaque to the session layer)
	AccountServiceURL     string
	AccountRequestTimeout time.Duration

	// Local state
	IdentityStorePath string
	DBPath            string

	// Session tokens
	JWTSecret        string
	SessionTokenTTL  time.Duration
	SessionCookieKey string

	// Logging
	LogDirectory    string
	LogToFile       bool
	LogJSONFormat   bool
	VerboseLogging  bool
	SlowQueryThresh time.Duration

	// Performance tracking
	MaxTrackedOperations int
)

func init() {
	loadEnvFile()

	Port = getEnvString("PORT", "10000")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	ServerShutdownTimeout = getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)

	AccountServiceURL = getEnvString("ACCOUNT_SERVICE_URL", "http://localhost:5000")
	AccountRequestTimeout = getEnvDuration("ACCOUNT_REQUEST_TIMEOUT", 10*time.Second)

	IdentityStorePath = getEnvString("IDENTITY_STORE_PATH", "state/identity.json")
	DBPath = getEnvString("DB_PATH", "state/bookhaven.db")

	JWTSecret = getEnvString("JWT_SECRET", "")
	SessionTokenTTL = getEnvDuration("SESSION_TOKEN_TTL", 24*time.Hour)
	SessionCookieKey = getEnvString("SESSION_COOKIE_KEY", "bookhaven_session")

	LogDirectory = getEnvString("LOG_DIRECTORY", "logs")
	LogToFile = getEnvBool("LOG_TO_FILE", false)
	LogJSONFormat = getEnvBool("LOG_JSON_FORMAT", false)
	VerboseLogging = getEnvBool("VERBOSE_LOGGING", false)
	SlowQueryThresh = getEnvDuration("SLOW_QUERY_THRESHOLD", 50*time.Millisecond)

	MaxTrackedOperations = getEnvInt("MAX_TRACKED_OPERATIONS", 10000)
}
