// ABOUTME: Configuration loader for the TutorLink client
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// Backend
	BaseURL     string // TutorLink API base URL, including the /api prefix
	HTTPTimeout int    // seconds, per-request bound (default 15)

	// Local credential storage
	CredentialsDir string // directory holding token/user files (default ~/.tutorlink)

	// Optional ssh+socks5 proxy for reaching non-public backends
	AllProxy string

	// Observability
	SentryDSN   string
	Environment string // reported to Sentry (default: production)
}

func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:        ensureScheme(os.Getenv("TUTORLINK_API_URL")),
		HTTPTimeout:    getEnvInt("TUTORLINK_HTTP_TIMEOUT", 15),
		CredentialsDir: getEnv("TUTORLINK_CREDENTIALS_DIR", defaultCredentialsDir()),
		AllProxy:       os.Getenv("TUTORLINK_ALL_PROXY"),
		SentryDSN:      os.Getenv("SENTRY_DSN"),
		Environment:    getEnv("TUTORLINK_ENV", "production"),
	}

	// Validate required fields
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("TUTORLINK_API_URL is required")
	}
	if cfg.CredentialsDir == "" {
		return nil, fmt.Errorf("TUTORLINK_CREDENTIALS_DIR could not be resolved")
	}

	if cfg.HTTPTimeout < 1 || cfg.HTTPTimeout > 300 {
		return nil, fmt.Errorf("TUTORLINK_HTTP_TIMEOUT must be between 1 and 300, got %d", cfg.HTTPTimeout)
	}

	return cfg, nil
}

// defaultCredentialsDir places credential files under the user's home directory.
func defaultCredentialsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tutorlink")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		url = "https://" + url
	}
	return strings.TrimRight(url, "/")
}
