// ABOUTME: HTTP client construction for the TutorLink API client
// ABOUTME: Supports an optional ssh+socks5 proxy for non-public backends

package api

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	proxy "github.com/cloudfoundry/socks5-proxy"
)

// newHTTPClient builds the underlying HTTP client with a bounded
// timeout. When allProxy is set (format:
// ssh+socks5://user@host:port?private-key=/path/to/key) all connections
// are dialed through the SOCKS5 tunnel.
func newHTTPClient(timeout time.Duration, allProxy string) *http.Client {
	transport := &http.Transport{
		TLSHandshakeTimeout: 30 * time.Second,
	}

	if allProxy != "" {
		dialContextFunc := createSOCKS5DialContextFunc(allProxy)
		if dialContextFunc != nil {
			transport.DialContext = dialContextFunc
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// createSOCKS5DialContextFunc builds a DialContext that tunnels through
// an SSH SOCKS5 proxy. Returns nil if the proxy URL is unusable.
// Supports format: ssh+socks5://user@host:port?private-key=/path/to/key
func createSOCKS5DialContextFunc(allProxy string) func(ctx context.Context, network, address string) (net.Conn, error) {
	// Strip ssh+ prefix if present
	allProxy = strings.TrimPrefix(allProxy, "ssh+")

	proxyURL, err := url.Parse(allProxy)
	if err != nil {
		slog.Error("Failed to parse proxy URL", "error", err)
		return nil
	}

	queryMap, err := url.ParseQuery(proxyURL.RawQuery)
	if err != nil {
		slog.Error("Failed to parse proxy query params", "error", err)
		return nil
	}

	username := ""
	if proxyURL.User != nil {
		username = proxyURL.User.Username()
	}

	proxySSHKeyPath := queryMap.Get("private-key")
	if proxySSHKeyPath == "" {
		slog.Error("Proxy URL missing required 'private-key' query param")
		return nil
	}

	proxySSHKey, err := os.ReadFile(proxySSHKeyPath)
	if err != nil {
		slog.Error("Failed to read SSH private key", "path", proxySSHKeyPath, "error", err)
		return nil
	}

	socks5Proxy := proxy.NewSocks5Proxy(proxy.NewHostKey(), log.Default(), 1*time.Minute)

	var (
		dialer proxy.DialFunc
		mut    sync.RWMutex
	)

	return func(ctx context.Context, network, address string) (net.Conn, error) {
		mut.RLock()
		haveDialer := dialer != nil
		mut.RUnlock()

		if haveDialer {
			return dialer(network, address)
		}

		mut.Lock()
		defer mut.Unlock()
		if dialer == nil {
			proxyDialer, err := socks5Proxy.Dialer(username, string(proxySSHKey), proxyURL.Host)
			if err != nil {
				return nil, fmt.Errorf("error creating SOCKS5 dialer: %w", err)
			}
			dialer = proxyDialer
		}
		return dialer(network, address)
	}
}
