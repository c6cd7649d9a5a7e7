package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Catalog sources.
const (
	CatalogSourceStatic = "static"
	CatalogSourceRemote = "remote"
)

type Config struct {
	Addr           string
	DBPath         string
	APIBaseURL     string
	CatalogSource  string
	LogLevel       string
	MockDelayMs    int
	HTTPTimeoutSec int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:           envOr("ADDR", ":8080"),
		DBPath:         envOr("DB_PATH", "file:rankcalc.db"),
		APIBaseURL:     envOr("API_BASE_URL", "http://localhost:3001"),
		CatalogSource:  envOr("CATALOG_SOURCE", CatalogSourceStatic),
		LogLevel:       envOr("LOG_LEVEL", "INFO"),
		MockDelayMs:    envIntOr("MOCK_DELAY_MS", 2000),
		HTTPTimeoutSec: envIntOr("HTTP_TIMEOUT_SECONDS", 15),
	}
}

// Validate checks the configuration and reports every problem it finds.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.APIBaseURL == "" {
		problems = append(problems, "API_BASE_URL cannot be empty")
	}
	switch c.CatalogSource {
	case CatalogSourceStatic, CatalogSourceRemote:
	default:
		problems = append(problems, fmt.Sprintf("CATALOG_SOURCE must be %q or %q, got %q",
			CatalogSourceStatic, CatalogSourceRemote, c.CatalogSource))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.MockDelayMs < 0 {
		problems = append(problems, "MOCK_DELAY_MS cannot be negative")
	}
	if c.HTTPTimeoutSec <= 0 {
		problems = append(problems, "HTTP_TIMEOUT_SECONDS must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
