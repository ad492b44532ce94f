// ABOUTME: Logout command
// ABOUTME: Notifies the backend best-effort and always clears local credentials

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long:  `Notify the backend to revoke the refresh token and clear local credentials. Safe to run when not logged in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		ctrl, _, _, err := newSession()
		if err != nil {
			return err
		}

		ctrl.Logout(ctx)
		fmt.Fprintln(os.Stdout, successStyle.Render("Logged out"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
