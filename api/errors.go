// ABOUTME: Typed error taxonomy for the TutorLink API client
// ABOUTME: Distinguishes transport, HTTP, session, and role-mismatch failures

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// NetworkError wraps a transport-level failure: no connectivity, DNS,
// timeout. It never indicates anything about the session.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx backend response unrelated to session expiry.
// Message comes from the response body when parseable, otherwise a
// status-keyed default.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// AuthError means the session is over: a refresh was attempted and
// failed, or no refresh token existed when one was required. Local
// credentials have already been cleared when this is returned.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}
	return "authentication failed"
}

func (e *AuthError) Unwrap() error { return e.Err }

// TypeMismatchError means login succeeded at the backend but the
// account's role does not match the form the user used. The identity is
// real, so no credentials are persisted and nothing is cleared.
type TypeMismatchError struct {
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("incorrect account type: expected %s, got %s", e.Expected, e.Actual)
}

// IsAuthError reports whether err is (or wraps) an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// maxErrorBody bounds how much of an error response is read for a message.
const maxErrorBody = 1 << 20

// errorFromResponse builds an HTTPError from a non-2xx response.
// A non-JSON or empty body falls back to a status-keyed default.
func errorFromResponse(resp *http.Response) *HTTPError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, msg := range []string{parsed.Message, parsed.Error, parsed.Detail} {
			if msg != "" {
				return &HTTPError{Status: resp.StatusCode, Message: msg}
			}
		}
	}

	message := http.StatusText(resp.StatusCode)
	if message == "" {
		message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return &HTTPError{Status: resp.StatusCode, Message: message}
}
