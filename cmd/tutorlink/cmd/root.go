// ABOUTME: Root command for the tutorlink CLI
// ABOUTME: Handles global flags and shared client/controller construction

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tutorlink/tutorlink-go/api"
	"github.com/tutorlink/tutorlink-go/config"
	"github.com/tutorlink/tutorlink-go/credentials"
	"github.com/tutorlink/tutorlink-go/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "tutorlink",
	Short: "CLI for the TutorLink tutor marketplace",
	Long: `tutorlink is a command-line client for the TutorLink marketplace backend.

It manages a persisted login session and exposes the tutor, chat, and
profile operations of the platform.

Environment Variables:
  TUTORLINK_API_URL          Backend API base URL including /api prefix (required)
  TUTORLINK_CREDENTIALS_DIR  Token storage directory (default: ~/.tutorlink)
  TUTORLINK_HTTP_TIMEOUT     Per-request timeout in seconds (default: 15)
  TUTORLINK_ALL_PROXY        Optional ssh+socks5:// proxy for the backend`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides TUTORLINK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newSession wires config, credential store, API client, and session
// controller for a command invocation.
func newSession() (*session.Controller, *api.Client, credentials.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if apiURL != "" {
		cfg.BaseURL = apiURL
	}

	store, err := credentials.NewFileStore(cfg.CredentialsDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	client := api.NewFromConfig(cfg, store)
	return session.New(client, store), client, store, nil
}
