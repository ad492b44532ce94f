// ABOUTME: Session state types: status enum, error kinds, state snapshot
// ABOUTME: The snapshot is the only session surface UI code reads

package session

import "github.com/tutorlink/tutorlink-go/models"

// Status is the client-side belief about authentication.
type Status string

const (
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// ErrorKind classifies a session-visible failure for UI routing.
type ErrorKind string

const (
	ErrorNetwork      ErrorKind = "network"
	ErrorBackend      ErrorKind = "backend"
	ErrorSessionEnded ErrorKind = "session_ended"
	ErrorRoleMismatch ErrorKind = "role_mismatch"
	ErrorUnknown      ErrorKind = "unknown"
)

// Error is the user-presentable form of the last failure. It overlays
// the status rather than being a state of its own.
type Error struct {
	Kind    ErrorKind
	Message string
}

// State is a read-only snapshot of the session.
type State struct {
	Status    Status
	User      *models.UserProfile
	LastError *Error
}

// Authenticated reports whether the snapshot represents a live session.
func (s State) Authenticated() bool {
	return s.Status == StatusAuthenticated
}
