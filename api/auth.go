// ABOUTME: Authentication operations: login, register, logout, current user
// ABOUTME: Login and register persist credentials as a side effect on success

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tutorlink/tutorlink-go/models"
)

// Login authenticates with email and password. The backend does not
// know which form the user filled in, so the returned user's type is
// checked against expectedUserType before anything is persisted; a
// mismatch returns *TypeMismatchError and leaves the store untouched.
func (c *Client) Login(ctx context.Context, email, password, expectedUserType string) (*models.AuthResponse, error) {
	data, err := c.authCall(ctx, "/auth/login/", models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if data.User.UserType != expectedUserType {
		return nil, &TypeMismatchError{Expected: expectedUserType, Actual: data.User.UserType}
	}

	if err := c.persistCredentials(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Register creates an account and persists the issued credentials.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	data, err := c.authCall(ctx, "/auth/register/", req)
	if err != nil {
		return nil, err
	}

	if err := c.persistCredentials(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Logout best-effort notifies the backend to blacklist the refresh
// token, then clears local credentials regardless of the outcome.
// Never fails.
func (c *Client) Logout(ctx context.Context) {
	if refresh := c.store.RefreshToken(); refresh != "" {
		err := c.Request(ctx, http.MethodPost, "/auth/logout/", models.RefreshRequest{Refresh: refresh}, nil)
		if err != nil {
			slog.Warn("Backend logout failed, clearing local credentials anyway", "error", err)
		}
	}
	c.store.ClearAll()
}

// CurrentUser fetches the authenticated identity from the backend.
func (c *Client) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.Request(ctx, http.MethodGet, "/auth/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update and returns the
// refreshed profile.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.Request(ctx, http.MethodPatch, "/users/profile/", fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// authCall performs an unauthenticated POST that returns user+tokens.
// No bearer token is attached and no refresh is attempted.
func (c *Client) authCall(ctx context.Context, endpoint string, body any) (*models.AuthResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, endpoint, payload, contentTypeJSON, "", uuid.NewString())
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp)
	}

	var data models.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	if data.User == nil {
		return nil, fmt.Errorf("response missing user")
	}
	if data.Tokens.Access == "" || data.Tokens.Refresh == "" {
		return nil, fmt.Errorf("response missing tokens")
	}
	return &data, nil
}

// persistCredentials writes tokens and the user cache. The token write
// is authoritative; the user cache is advisory and only logged on
// failure since it exists to avoid a redundant fetch.
func (c *Client) persistCredentials(data *models.AuthResponse) error {
	if err := c.store.SetTokens(data.Tokens.Access, data.Tokens.Refresh); err != nil {
		return fmt.Errorf("failed to persist tokens: %w", err)
	}
	if err := c.store.SetUser(data.User); err != nil {
		slog.Warn("Failed to cache user profile", "error", err)
	}
	return nil
}
