// ABOUTME: Single chokepoint for all TutorLink backend calls
// ABOUTME: Attaches bearer tokens and performs one-shot refresh-and-retry on 401

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/tutorlink/tutorlink-go/cache"
	"github.com/tutorlink/tutorlink-go/config"
	"github.com/tutorlink/tutorlink-go/credentials"
	"github.com/tutorlink/tutorlink-go/models"
)

const (
	defaultTimeout  = 15 * time.Second
	contentTypeJSON = "application/json"

	// nearExpiryLeeway triggers a debug log when an attached access
	// token is about to expire.
	nearExpiryLeeway = 30 * time.Second

	// catalogTTL bounds staleness of cached reference data (subject
	// catalog, platform counters).
	catalogTTL = 5 * time.Minute
)

// Client is the API client for the TutorLink backend. All feature
// calls go through Request, which owns bearer attachment and the
// refresh-and-retry policy.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	store        credentials.Store
	catalog      *cache.Cache
	refreshGroup singleflight.Group
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the given base URL (including the /api
// prefix) backed by the given credential store.
func New(baseURL string, store credentials.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: newHTTPClient(defaultTimeout, ""),
		catalog:    cache.New(catalogTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a client with the configured timeout and
// optional SOCKS5 proxy.
func NewFromConfig(cfg *config.Config, store credentials.Store) *Client {
	timeout := time.Duration(cfg.HTTPTimeout) * time.Second
	return New(cfg.BaseURL, store, WithHTTPClient(newHTTPClient(timeout, cfg.AllProxy)))
}

// Request issues an authenticated JSON call and decodes the 2xx
// response body into out (which may be nil to discard it). body is
// marshaled as JSON when non-nil.
//
// Policy: the stored access token (if any) is attached as a bearer
// header. A 401 with a token attached triggers exactly one coalesced
// refresh; on success the call is replayed once and that result is
// returned whatever its status. A refresh failure clears local
// credentials and returns *AuthError. A 401 without a token attached is
// a plain *HTTPError since there is nothing to refresh.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}
	return c.request(ctx, method, endpoint, payload, contentTypeJSON, out)
}

func (c *Client) request(ctx context.Context, method, endpoint string, payload []byte, contentType string, out any) error {
	requestID := uuid.NewString()
	start := time.Now()

	token := c.store.AccessToken()
	if token != "" && NeedsRefresh(token, nearExpiryLeeway) {
		slog.Debug("Access token near expiry", "request_id", requestID)
	}

	resp, err := c.send(ctx, method, endpoint, payload, contentType, token, requestID)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		drain(resp)

		newToken, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			slog.Warn("Token refresh failed, session ended",
				"request_id", requestID, "error", refreshErr)
			return &AuthError{Err: refreshErr}
		}

		resp, err = c.send(ctx, method, endpoint, payload, contentType, newToken, requestID)
		if err != nil {
			return err
		}
	}
	defer drain(resp)

	slog.Debug("Request completed",
		"request_id", requestID,
		"method", method,
		"path", endpoint,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// refreshAccessToken mints a new access token from the stored refresh
// token. Concurrent callers share one in-flight refresh so a burst of
// 401s asks the backend exactly once. Any failure ends the session:
// local credentials are cleared before returning.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		refresh := c.store.RefreshToken()
		if refresh == "" {
			return nil, errors.New("no refresh token available")
		}

		payload, err := json.Marshal(models.RefreshRequest{Refresh: refresh})
		if err != nil {
			return nil, err
		}

		resp, err := c.send(ctx, http.MethodPost, "/auth/refresh/", payload, contentTypeJSON, "", uuid.NewString())
		if err != nil {
			return nil, err
		}
		defer drain(resp)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, errorFromResponse(resp)
		}

		var data models.RefreshResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, fmt.Errorf("invalid refresh response: %w", err)
		}
		if data.Access == "" {
			return nil, errors.New("refresh response missing access token")
		}

		// Rewrite both keys to keep the both-present invariant.
		if err := c.store.SetTokens(data.Access, refresh); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
		return data.Access, nil
	})
	if err != nil {
		c.store.ClearAll()
		return "", err
	}
	return v.(string), nil
}

// send performs a single HTTP exchange. Transport failures come back as
// *NetworkError; the caller owns the response body on success.
func (c *Client) send(ctx context.Context, method, endpoint string, payload []byte, contentType, token, requestID string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
}
