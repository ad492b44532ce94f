// ABOUTME: Session controller: the only component that mutates session state
// ABOUTME: Maps API client errors to the UI-facing taxonomy and drives transitions

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/getsentry/sentry-go"

	"github.com/tutorlink/tutorlink-go/api"
	"github.com/tutorlink/tutorlink-go/credentials"
	"github.com/tutorlink/tutorlink-go/models"
)

const (
	msgNetwork        = "Network error. Please check your connection."
	msgSessionExpired = "Your session has expired. Please log in again."
)

// Controller mediates between UI intents and the API client. All
// methods are safe for concurrent use; transitions are serialized.
type Controller struct {
	client *api.Client
	store  credentials.Store

	mu       sync.Mutex
	state    State
	checking bool // an initial-load check is in flight

	onChange func(State)
}

// Option customizes a Controller.
type Option func(*Controller)

// WithChangeListener registers a callback invoked with a snapshot after
// every state transition. Called outside the controller lock.
func WithChangeListener(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// New creates a controller in the loading state.
func New(client *api.Client, store credentials.Store, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		store:  store,
		state:  State{Status: StatusLoading},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CheckAuthStatus rehydrates the session from stored credentials. With
// no stored token+user pair it settles on unauthenticated without a
// network call; otherwise it revalidates against the backend and adopts
// the fresh profile. A duplicate call while one is in flight returns
// the current snapshot without a second backend call.
func (c *Controller) CheckAuthStatus(ctx context.Context) State {
	c.mu.Lock()
	if c.checking {
		state := c.state
		c.mu.Unlock()
		return state
	}
	c.checking = true
	c.state.Status = StatusLoading
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.checking = false
		c.mu.Unlock()
	}()

	storedUser := c.store.User()
	token := c.store.AccessToken()
	if storedUser == nil || token == "" {
		return c.transition(StatusUnauthenticated, nil, nil)
	}

	user, err := c.client.CurrentUser(ctx)
	if err != nil {
		// Stored credentials could not be validated; the session is over.
		c.store.ClearAll()
		var sessionErr *Error
		if api.IsAuthError(err) {
			sessionErr = &Error{Kind: ErrorSessionEnded, Message: msgSessionExpired}
		}
		slog.Info("Stored session invalid", "error", err)
		return c.transition(StatusUnauthenticated, nil, sessionErr)
	}

	return c.transition(StatusAuthenticated, user, nil)
}

// Login authenticates and moves to authenticated, or to unauthenticated
// with the failure recorded. Errors are absorbed into the state; the
// caller reads the returned snapshot.
func (c *Controller) Login(ctx context.Context, email, password, role string) State {
	c.setLoading()

	resp, err := c.client.Login(ctx, email, password, role)
	if err != nil {
		return c.transition(StatusUnauthenticated, nil, c.classify(err))
	}
	return c.transition(StatusAuthenticated, resp.User, nil)
}

// Register creates an account; symmetric to Login.
func (c *Controller) Register(ctx context.Context, req models.RegisterRequest) State {
	c.setLoading()

	resp, err := c.client.Register(ctx, req)
	if err != nil {
		return c.transition(StatusUnauthenticated, nil, c.classify(err))
	}
	return c.transition(StatusAuthenticated, resp.User, nil)
}

// Logout ends the session unconditionally, even if the backend
// notification fails. Idempotent.
func (c *Controller) Logout(ctx context.Context) State {
	c.client.Logout(ctx)
	return c.transition(StatusUnauthenticated, nil, nil)
}

// UpdateUser applies a partial profile edit. A failed edit is not a
// session failure: state stays authenticated with the error recorded,
// unless the failure was credential-related, which forces logout.
func (c *Controller) UpdateUser(ctx context.Context, fields map[string]any) State {
	updated, err := c.client.UpdateProfile(ctx, fields)
	if err != nil {
		if api.IsAuthError(err) {
			return c.transition(StatusUnauthenticated, nil, &Error{Kind: ErrorSessionEnded, Message: msgSessionExpired})
		}
		c.mu.Lock()
		c.state.LastError = c.classify(err)
		state := c.state
		c.mu.Unlock()
		c.notify(state)
		return state
	}

	if err := c.store.SetUser(updated); err != nil {
		slog.Warn("Failed to cache updated user", "error", err)
	}
	return c.transition(StatusAuthenticated, updated, nil)
}

// ClearError drops the last error, e.g. when the user edits a form field.
func (c *Controller) ClearError() State {
	c.mu.Lock()
	c.state.LastError = nil
	state := c.state
	c.mu.Unlock()
	c.notify(state)
	return state
}

func (c *Controller) setLoading() {
	c.mu.Lock()
	c.state.Status = StatusLoading
	c.state.LastError = nil
	state := c.state
	c.mu.Unlock()
	c.notify(state)
}

func (c *Controller) transition(status Status, user *models.UserProfile, lastErr *Error) State {
	c.mu.Lock()
	c.state = State{Status: status, User: user, LastError: lastErr}
	state := c.state
	c.mu.Unlock()
	c.notify(state)
	return state
}

func (c *Controller) notify(state State) {
	if c.onChange != nil {
		c.onChange(state)
	}
}

// classify maps API client errors to the UI-facing taxonomy. Unexpected
// failures and backend 5xx responses are reported to Sentry when it is
// configured.
func (c *Controller) classify(err error) *Error {
	var netErr *api.NetworkError
	var httpErr *api.HTTPError
	var authErr *api.AuthError
	var mismatchErr *api.TypeMismatchError

	switch {
	case errors.As(err, &mismatchErr):
		return &Error{Kind: ErrorRoleMismatch, Message: mismatchErr.Error()}
	case errors.As(err, &authErr):
		return &Error{Kind: ErrorSessionEnded, Message: msgSessionExpired}
	case errors.As(err, &netErr):
		return &Error{Kind: ErrorNetwork, Message: msgNetwork}
	case errors.As(err, &httpErr):
		if httpErr.Status >= 500 {
			sentry.CaptureException(err)
		}
		return &Error{Kind: ErrorBackend, Message: httpErr.Message}
	default:
		sentry.CaptureException(err)
		return &Error{Kind: ErrorUnknown, Message: err.Error()}
	}
}
