// ABOUTME: Tests for session controller transitions
// ABOUTME: Drives the controller against httptest backends and checks snapshots

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tutorlink/tutorlink-go/api"
	"github.com/tutorlink/tutorlink-go/credentials"
	"github.com/tutorlink/tutorlink-go/models"
)

func newTestController(t *testing.T, handler http.Handler, opts ...Option) (*Controller, *credentials.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := credentials.NewMemoryStore()
	client := api.New(server.URL, store)
	return New(client, store, opts...), store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func seedSession(store *credentials.MemoryStore) {
	store.SetTokens("acc", "ref")
	store.SetUser(&models.UserProfile{ID: "u-1", FirstName: "Old", UserType: models.UserTypeStudent})
}

func TestCheckAuthStatus_NoCredentialsSkipsBackend(t *testing.T) {
	var backendCalls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&backendCalls, 1)
		writeJSON(w, http.StatusOK, map[string]string{})
	})

	ctrl, _ := newTestController(t, handler)

	state := ctrl.CheckAuthStatus(context.Background())

	if state.Status != StatusUnauthenticated {
		t.Errorf("status = %q, want unauthenticated", state.Status)
	}
	if state.LastError != nil {
		t.Errorf("LastError = %+v, want nil", state.LastError)
	}
	if got := atomic.LoadInt32(&backendCalls); got != 0 {
		t.Errorf("backend calls = %d, want 0", got)
	}
}

func TestCheckAuthStatus_AdoptsFreshProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.UserProfile{
			ID: "u-1", FirstName: "Fresh", UserType: models.UserTypeStudent,
		})
	})

	ctrl, store := newTestController(t, mux)
	seedSession(store)

	state := ctrl.CheckAuthStatus(context.Background())

	if state.Status != StatusAuthenticated {
		t.Fatalf("status = %q, want authenticated", state.Status)
	}
	if state.User == nil || state.User.FirstName != "Fresh" {
		t.Errorf("user = %+v, want the backend profile, not the cached one", state.User)
	}
}

func TestCheckAuthStatus_InvalidCredentialsEndSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "expired"})
	})
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "blacklisted"})
	})

	ctrl, store := newTestController(t, mux)
	seedSession(store)

	state := ctrl.CheckAuthStatus(context.Background())

	if state.Status != StatusUnauthenticated {
		t.Fatalf("status = %q, want unauthenticated", state.Status)
	}
	if state.LastError == nil || state.LastError.Kind != ErrorSessionEnded {
		t.Errorf("LastError = %+v, want session_ended", state.LastError)
	}
	if store.AccessToken() != "" || store.RefreshToken() != "" || store.User() != nil {
		t.Error("credentials survived an invalid session")
	}
}

func TestCheckAuthStatus_BackendErrorClearsWithoutSessionError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	})

	ctrl, store := newTestController(t, mux)
	seedSession(store)

	state := ctrl.CheckAuthStatus(context.Background())

	if state.Status != StatusUnauthenticated {
		t.Fatalf("status = %q, want unauthenticated", state.Status)
	}
	if state.LastError != nil {
		t.Errorf("LastError = %+v, want nil for non-credential failure", state.LastError)
	}
	if store.AccessToken() != "" {
		t.Error("credentials survived a failed revalidation")
	}
}

func TestCheckAuthStatus_DuplicateInFlightReturnsSnapshot(t *testing.T) {
	var meCalls int32
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&meCalls, 1)
		<-release
		writeJSON(w, http.StatusOK, models.UserProfile{ID: "u-1", UserType: models.UserTypeStudent})
	})

	ctrl, store := newTestController(t, mux)
	seedSession(store)

	done := make(chan State, 1)
	go func() {
		done <- ctrl.CheckAuthStatus(context.Background())
	}()

	// Wait for the first check to reach the backend
	for atomic.LoadInt32(&meCalls) == 0 {
		time.Sleep(time.Millisecond)
	}

	dup := ctrl.CheckAuthStatus(context.Background())
	if dup.Status != StatusLoading {
		t.Errorf("duplicate check status = %q, want loading snapshot", dup.Status)
	}

	close(release)
	first := <-done

	if first.Status != StatusAuthenticated {
		t.Errorf("first check status = %q, want authenticated", first.Status)
	}
	if got := atomic.LoadInt32(&meCalls); got != 1 {
		t.Errorf("backend calls = %d, want 1", got)
	}
}

func TestLogin_Transitions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, models.AuthResponse{
			User:   &models.UserProfile{ID: "u-1", Email: req.Email, UserType: models.UserTypeStudent},
			Tokens: models.Tokens{Access: "acc", Refresh: "ref"},
		})
	})

	ctrl, _ := newTestController(t, mux)

	state := ctrl.Login(context.Background(), "a@b.com", "pw", models.UserTypeStudent)
	if !state.Authenticated() {
		t.Fatalf("status = %q, want authenticated", state.Status)
	}
	if state.User == nil || state.User.Email != "a@b.com" {
		t.Errorf("user = %+v, want logged-in profile", state.User)
	}

	state = ctrl.Login(context.Background(), "a@b.com", "wrong", models.UserTypeStudent)
	if state.Status != StatusUnauthenticated {
		t.Fatalf("status = %q, want unauthenticated", state.Status)
	}
	if state.LastError == nil || state.LastError.Kind != ErrorBackend {
		t.Errorf("LastError = %+v, want backend error", state.LastError)
	}
	if state.LastError.Message != "Invalid email or password" {
		t.Errorf("message = %q, want backend message", state.LastError.Message)
	}
}

func TestLogin_RoleMismatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.AuthResponse{
			User:   &models.UserProfile{ID: "u-1", UserType: models.UserTypeStudent},
			Tokens: models.Tokens{Access: "acc", Refresh: "ref"},
		})
	})

	ctrl, store := newTestController(t, mux)

	state := ctrl.Login(context.Background(), "a@b.com", "pw", models.UserTypeTutor)

	if state.Status != StatusUnauthenticated {
		t.Fatalf("status = %q, want unauthenticated", state.Status)
	}
	if state.LastError == nil || state.LastError.Kind != ErrorRoleMismatch {
		t.Errorf("LastError = %+v, want role_mismatch", state.LastError)
	}
	if store.AccessToken() != "" {
		t.Error("tokens persisted despite role mismatch")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{})
	})

	ctrl, store := newTestController(t, mux)
	seedSession(store)

	state := ctrl.Logout(context.Background())
	if state.Status != StatusUnauthenticated {
		t.Fatalf("status = %q, want unauthenticated", state.Status)
	}
	if store.AccessToken() != "" || store.User() != nil {
		t.Error("credentials survived logout")
	}

	// A second logout with nothing stored must land in the same place
	state = ctrl.Logout(context.Background())
	if state.Status != StatusUnauthenticated || state.LastError != nil {
		t.Errorf("second logout state = %+v, want clean unauthenticated", state)
	}
}

func TestUpdateUser_FailureKeepsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.AuthResponse{
			User:   &models.UserProfile{ID: "u-1", UserType: models.UserTypeStudent},
			Tokens: models.Tokens{Access: "acc", Refresh: "ref"},
		})
	})
	mux.HandleFunc("/users/profile/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Phone number is invalid"})
	})

	ctrl, _ := newTestController(t, mux)
	ctrl.Login(context.Background(), "a@b.com", "pw", models.UserTypeStudent)

	state := ctrl.UpdateUser(context.Background(), map[string]any{"phone": "nope"})

	if state.Status != StatusAuthenticated {
		t.Fatalf("status = %q, want still authenticated", state.Status)
	}
	if state.LastError == nil || state.LastError.Kind != ErrorBackend {
		t.Errorf("LastError = %+v, want backend error", state.LastError)
	}
	if state.User == nil || state.User.ID != "u-1" {
		t.Errorf("user = %+v, want the pre-edit profile kept", state.User)
	}

	cleared := ctrl.ClearError()
	if cleared.LastError != nil {
		t.Errorf("LastError after ClearError = %+v, want nil", cleared.LastError)
	}
	if cleared.Status != StatusAuthenticated {
		t.Errorf("status after ClearError = %q, want authenticated", cleared.Status)
	}
}

func TestUpdateUser_SuccessAdoptsProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.UserProfile{
			ID: "u-1", FirstName: "Updated", UserType: models.UserTypeStudent,
		})
	})

	ctrl, store := newTestController(t, mux)
	seedSession(store)

	state := ctrl.UpdateUser(context.Background(), map[string]any{"first_name": "Updated"})

	if state.Status != StatusAuthenticated {
		t.Fatalf("status = %q, want authenticated", state.Status)
	}
	if state.User == nil || state.User.FirstName != "Updated" {
		t.Errorf("user = %+v, want the updated profile", state.User)
	}
	if cached := store.User(); cached == nil || cached.FirstName != "Updated" {
		t.Errorf("cached user = %+v, want updated copy", cached)
	}
}

func TestUpdateUser_CredentialFailureForcesLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "expired"})
	})
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "blacklisted"})
	})

	ctrl, store := newTestController(t, mux)
	seedSession(store)

	state := ctrl.UpdateUser(context.Background(), map[string]any{"bio": "hi"})

	if state.Status != StatusUnauthenticated {
		t.Fatalf("status = %q, want forced logout", state.Status)
	}
	if state.LastError == nil || state.LastError.Kind != ErrorSessionEnded {
		t.Errorf("LastError = %+v, want session_ended", state.LastError)
	}
	if store.AccessToken() != "" {
		t.Error("credentials survived a credential failure")
	}
}

func TestChangeListener_SeesTransitions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.AuthResponse{
			User:   &models.UserProfile{ID: "u-1", UserType: models.UserTypeStudent},
			Tokens: models.Tokens{Access: "acc", Refresh: "ref"},
		})
	})

	var seen []Status
	ctrl, _ := newTestController(t, mux, WithChangeListener(func(s State) {
		seen = append(seen, s.Status)
	}))

	ctrl.Login(context.Background(), "a@b.com", "pw", models.UserTypeStudent)

	if len(seen) != 2 || seen[0] != StatusLoading || seen[1] != StatusAuthenticated {
		t.Errorf("listener saw %v, want [loading authenticated]", seen)
	}
}
