// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port string
	Host string

	DatabaseURL string

	GeminiAPIKey string
	GeminiModel  string

	ScoreTimeoutSeconds int
	RetryAttempts       int
	BatchLimit          int

	LogJSON  bool
	LogDebug bool
}

// Load reads configuration from the environment with defaults. Required
// values are checked by Validate, not here, so read-only commands can load
// a partial configuration.
func Load() *Config {
	return &Config{
		Port:                GetEnv("PORT", "8090"),
		Host:                GetEnv("HOST", "0.0.0.0"),
		DatabaseURL:         GetEnv("DATABASE_URL", ""),
		GeminiAPIKey:        GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:         GetEnv("GEMINI_MODEL", ""),
		ScoreTimeoutSeconds: GetEnvInt("SCORE_TIMEOUT_SECONDS", 60),
		RetryAttempts:       GetEnvInt("RETRY_ATTEMPTS", 3),
		BatchLimit:          GetEnvInt("BATCH_LIMIT", 4),
		LogJSON:             GetEnvBool("LOG_JSON", true),
		LogDebug:            GetEnvBool("LOG_DEBUG", false),
	}
}

// Validate checks that the values the serving path depends on are present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// ScoreTimeout returns the per-run deadline as a duration.
func (c *Config) ScoreTimeout() time.Duration {
	return time.Duration(c.ScoreTimeoutSeconds) * time.Second
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
