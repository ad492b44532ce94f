// ABOUTME: Tests for the status command against a fake backend
// ABOUTME: Drives runStatus end to end through env-configured wiring

package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tutorlink/tutorlink-go/credentials"
	"github.com/tutorlink/tutorlink-go/models"
)

func setTestEnv(t *testing.T, backendURL string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TUTORLINK_API_URL", backendURL)
	t.Setenv("TUTORLINK_CREDENTIALS_DIR", dir)
	t.Setenv("TUTORLINK_HTTP_TIMEOUT", "")
	t.Setenv("TUTORLINK_ALL_PROXY", "")
	return dir
}

func TestRunStatus_NotLoggedIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected backend call %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	setTestEnv(t, server.URL)

	var out strings.Builder
	exitCode, err := runStatus(context.Background(), &out)
	if err != nil {
		t.Fatalf("runStatus failed: %v", err)
	}
	if exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}
	if !strings.Contains(out.String(), "Not logged in") {
		t.Errorf("output = %q, want not-logged-in message", out.String())
	}
}

func TestRunStatus_LoggedIn(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.UserProfile{
			ID: "u-1", Email: "a@b.com", FirstName: "An", LastName: "Nguyen",
			UserType: models.UserTypeStudent,
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := setTestEnv(t, server.URL)

	store, err := credentials.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := store.SetTokens("acc", "ref"); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}
	if err := store.SetUser(&models.UserProfile{ID: "u-1", UserType: models.UserTypeStudent}); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	var out strings.Builder
	exitCode, err := runStatus(context.Background(), &out)
	if err != nil {
		t.Fatalf("runStatus failed: %v", err)
	}
	if exitCode != 0 {
		t.Errorf("exit code = %d, want 0", exitCode)
	}
	if !strings.Contains(out.String(), "a@b.com") {
		t.Errorf("output = %q, want the fresh profile email", out.String())
	}
}
