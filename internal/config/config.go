package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned by Load when DATAJUD_API_KEY is not set.
var ErrMissingAPIKey = errors.New("DATAJUD_API_KEY is required")

// Config holds all application configuration
type Config struct {
	// Server settings
	Host string
	Port string

	// Logging settings
	LogLevel  string
	LogFormat string

	// DataJud settings
	DatajudBaseURL string
	DatajudAPIKey  string
	DatajudTimeout time.Duration

	// Reply settings
	DisplayTimezone string

	// Database settings
	DatabasePath string

	// Cache settings
	CacheSize int
	CacheTTL  time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		DatajudBaseURL:  getEnv("DATAJUD_BASE_URL", "https://api-publica.datajud.cnj.jus.br"),
		DatajudAPIKey:   getEnv("DATAJUD_API_KEY", ""),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "America/Sao_Paulo"),
		DatabasePath:    getEnv("DATABASE_PATH", "./data/datajud.db"),
	}

	if cfg.DatajudAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	timeout, err := strconv.Atoi(getEnv("DATAJUD_TIMEOUT", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATAJUD_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid DATAJUD_TIMEOUT: must be positive, got %d", timeout)
	}
	cfg.DatajudTimeout = time.Duration(timeout) * time.Second

	cfg.CacheSize, err = strconv.Atoi(getEnv("CACHE_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = time.Duration(cacheTTL) * time.Minute

	if _, err := time.LoadLocation(cfg.DisplayTimezone); err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Location returns the zone used for the reply footer, falling back to the
// process local zone.
func (c *Config) Location() *time.Location {
	if c.DisplayTimezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
