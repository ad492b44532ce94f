// ABOUTME: Tests for environment-driven configuration loading
// ABOUTME: Covers defaults, scheme normalization, and validation bounds

package config

import (
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TUTORLINK_API_URL", "https://api.tutorlink.example/api")
	t.Setenv("TUTORLINK_HTTP_TIMEOUT", "")
	t.Setenv("TUTORLINK_CREDENTIALS_DIR", t.TempDir())
	t.Setenv("TUTORLINK_ALL_PROXY", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("TUTORLINK_ENV", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseURL != "https://api.tutorlink.example/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 15 {
		t.Errorf("HTTPTimeout = %d, want default 15", cfg.HTTPTimeout)
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want default production", cfg.Environment)
	}
}

func TestLoad_RequiresAPIURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TUTORLINK_API_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without TUTORLINK_API_URL")
	}
}

func TestLoad_NormalizesBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"api.tutorlink.example/api", "https://api.tutorlink.example/api"},
		{"https://api.tutorlink.example/api/", "https://api.tutorlink.example/api"},
		{"http://localhost:8000/api", "http://localhost:8000/api"},
		{"localhost:8000/api///", "https://localhost:8000/api"},
	}

	for _, tt := range tests {
		setBaseEnv(t)
		t.Setenv("TUTORLINK_API_URL", tt.in)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", tt.in, err)
		}
		if cfg.BaseURL != tt.want {
			t.Errorf("BaseURL for %q = %q, want %q", tt.in, cfg.BaseURL, tt.want)
		}
	}
}

func TestLoad_TimeoutBounds(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TUTORLINK_HTTP_TIMEOUT", "0")
	if _, err := Load(); err == nil {
		t.Error("Load accepted a zero timeout")
	}

	t.Setenv("TUTORLINK_HTTP_TIMEOUT", "301")
	if _, err := Load(); err == nil {
		t.Error("Load accepted a timeout above the cap")
	}

	t.Setenv("TUTORLINK_HTTP_TIMEOUT", "60")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPTimeout != 60 {
		t.Errorf("HTTPTimeout = %d, want 60", cfg.HTTPTimeout)
	}
}

func TestLoad_InvalidTimeoutFallsBackToDefault(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TUTORLINK_HTTP_TIMEOUT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPTimeout != 15 {
		t.Errorf("HTTPTimeout = %d, want default 15 for unparseable value", cfg.HTTPTimeout)
	}
}
