// ABOUTME: Status command showing the current session
// ABOUTME: Revalidates stored credentials against the backend

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tutorlink/tutorlink-go/api"
	"github.com/tutorlink/tutorlink-go/session"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"whoami"},
	Short:   "Show the current session",
	Long:  `Check whether a stored session is still valid and show the signed-in user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode, err := runStatus(ctx, os.Stdout)
		if err != nil {
			return err
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(ctx context.Context, w io.Writer) (int, error) {
	ctrl, _, store, err := newSession()
	if err != nil {
		return 0, err
	}

	state := ctrl.CheckAuthStatus(ctx)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatStatusJSON(state))
		if !state.Authenticated() {
			return 1, nil
		}
		return 0, nil
	}

	if !state.Authenticated() {
		msg := "Not logged in"
		if state.LastError != nil {
			msg = state.LastError.Message
		}
		fmt.Fprintln(w, errorStyle.Render(msg))
		return 1, nil
	}

	fmt.Fprintln(w, successStyle.Render("Logged in"))
	fmt.Fprintln(w, renderField("User", state.User.FullName()))
	fmt.Fprintln(w, renderField("Email", state.User.Email))
	fmt.Fprintln(w, renderField("Role", state.User.UserType))
	if token := store.AccessToken(); token != "" {
		if expiry, ok := api.TokenExpiry(token); ok {
			fmt.Fprintln(w, renderField("Token expires", expiry.Local().Format(time.RFC1123)))
		}
	}
	return 0, nil
}

func formatStatusJSON(state session.State) string {
	output := map[string]any{
		"status": string(state.Status),
	}
	if state.User != nil {
		output["user"] = state.User
	}
	if state.LastError != nil {
		output["error"] = state.LastError.Message
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
