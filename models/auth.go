// ABOUTME: Authentication request and response types for the TutorLink API
// ABOUTME: Covers login, registration, and token refresh payloads

package models

// Tokens carries the access/refresh token pair issued by the backend.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User   *UserProfile `json:"user"`
	Tokens Tokens       `json:"tokens"`
}

// LoginRequest is the body for POST /auth/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body for POST /auth/register/.
// ProfileData carries role-specific fields the backend fans out to the
// student or tutor profile.
type RegisterRequest struct {
	Email           string         `json:"email"`
	Password        string         `json:"password"`
	PasswordConfirm string         `json:"password_confirm"`
	Phone           string         `json:"phone,omitempty"`
	UserType        string         `json:"user_type"`
	FirstName       string         `json:"first_name,omitempty"`
	LastName        string         `json:"last_name,omitempty"`
	ProfileData     map[string]any `json:"profile_data,omitempty"`
}

// RefreshRequest is the body for POST /auth/refresh/ and /auth/logout/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse is returned by POST /auth/refresh/.
type RefreshResponse struct {
	Access string `json:"access"`
}
