// Package config provides configuration management for the resourcebox service.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: every problem found while loading is gathered
// and returned as a single aggregated error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret     string        // Secret key for signing JWTs
	TokenDuration time.Duration // Validity window of issued tokens
}

// ResourceConfig holds the limits the sanitizer applies to resource payloads.
type ResourceConfig struct {
	MaxCellLength  int // Maximum length of each data cell, in runes
	MaxArrayLength int // Maximum number of cells per resource
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port           string // Port for the HTTP server
	MigrationsPath string // Optional; migrations run at startup when set
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB       *PoolConfig
	Auth     *AuthConfig
	Resource *ResourceConfig
	Server   *ServerConfig
}

// getRequiredEnv returns the value of a required environment variable,
// appending to the errors slice when it is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv returns the value of an optional environment variable,
// falling back to defaultValue when it is not set.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt parses an optional environment variable as an int.
// Uses defaultValue if not set; appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration parses an optional environment variable as a
// time.Duration ("15m", "48h"). Uses defaultValue if not set; appends an
// error if parsing fails.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the pool size within [5, 100], recording a note in the
// errors slice when the configured value had to be adjusted.
func clampPoolSize(size int, varName string, errors *[]string) int {
	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		return 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database configuration
	dbUser := getRequiredEnv("DB_USER", &errors)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errors)
	dbName := getRequiredEnv("DB_NAME", &errors)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errors)
	poolSize := clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors), "DB_POOL_SIZE", &errors)

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Auth configuration. Issued tokens are valid for 48 hours by default.
	jwtSecret := getRequiredEnv("JWT_SECRET", &errors)
	tokenDuration := getOptionalEnvDuration("JWT_TOKEN_DURATION", 48*time.Hour, &errors)

	authConfig := &AuthConfig{
		JWTSecret:     jwtSecret,
		TokenDuration: tokenDuration,
	}

	// Resource payload limits
	maxCellLength := getOptionalEnvInt("MAX_CELL_LENGTH", 512, &errors)
	maxArrayLength := getOptionalEnvInt("MAX_ARRAY_LENGTH", 10, &errors)
	if maxCellLength <= 0 {
		errors = append(errors, fmt.Sprintf("MAX_CELL_LENGTH must be positive, got %d", maxCellLength))
	}
	if maxArrayLength <= 0 {
		errors = append(errors, fmt.Sprintf("MAX_ARRAY_LENGTH must be positive, got %d", maxArrayLength))
	}

	resourceConfig := &ResourceConfig{
		MaxCellLength:  maxCellLength,
		MaxArrayLength: maxArrayLength,
	}

	// Server configuration
	serverConfig := &ServerConfig{
		Port:           getOptionalEnv("PORT", "8080"),
		MigrationsPath: getOptionalEnv("MIGRATIONS_PATH", ""),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		DB:       dbConfig,
		Auth:     authConfig,
		Resource: resourceConfig,
		Server:   serverConfig,
	}, nil
}
