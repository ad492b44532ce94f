// ABOUTME: Profile commands: update fields and upload a profile image
// ABOUTME: Edits go through the session controller; a failed edit keeps the session

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update key=value [key=value ...]",
	Short: "Update profile fields",
	Long: `Apply a partial profile update, e.g.:

  tutorlink profile update bio="Maths tutor" location=Hanoi`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		fields := make(map[string]any, len(args))
		for _, arg := range args {
			key, value, found := strings.Cut(arg, "=")
			if !found || key == "" {
				return fmt.Errorf("invalid field %q: expected key=value", arg)
			}
			fields[key] = value
		}

		ctrl, _, _, err := newSession()
		if err != nil {
			return err
		}

		state := ctrl.UpdateUser(ctx, fields)
		if state.LastError != nil {
			fmt.Fprintln(os.Stdout, errorStyle.Render("Update failed: ")+state.LastError.Message)
			os.Exit(1)
		}

		fmt.Fprintln(os.Stdout, successStyle.Render("Profile updated"))
		return nil
	},
}

var profileImageCmd = &cobra.Command{
	Use:   "image <path>",
	Short: "Upload a profile image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		_, client, _, err := newSession()
		if err != nil {
			return err
		}

		resp, err := client.UploadProfileImage(ctx, file.Name(), file)
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, successStyle.Render("Uploaded"))
		if resp.ProfileImage != "" {
			fmt.Fprintln(os.Stdout, renderField("Image", resp.ProfileImage))
		}
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profileImageCmd)
	rootCmd.AddCommand(profileCmd)
}
