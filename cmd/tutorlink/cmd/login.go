// ABOUTME: Login command with interactive credential prompt
// ABOUTME: Authenticates against the backend and persists the session locally

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tutorlink/tutorlink-go/models"
	"github.com/tutorlink/tutorlink-go/session"
)

var (
	loginEmail    string
	loginPassword string
	loginRole     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store a session",
	Long:  `Authenticate against the TutorLink backend and persist the session tokens locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode, err := runLogin(ctx, os.Stdout)
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
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted if omitted)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted if omitted)")
	loginCmd.Flags().StringVar(&loginRole, "role", models.UserTypeStudent, "Account role: student or tutor")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(ctx context.Context, w io.Writer) (int, error) {
	if loginRole != models.UserTypeStudent && loginRole != models.UserTypeTutor {
		return 0, fmt.Errorf("invalid --role %q: must be student or tutor", loginRole)
	}

	if loginEmail == "" || loginPassword == "" {
		if err := promptCredentials(); err != nil {
			return 0, err
		}
	}

	ctrl, _, _, err := newSession()
	if err != nil {
		return 0, err
	}

	state := ctrl.Login(ctx, loginEmail, loginPassword, loginRole)
	if !state.Authenticated() {
		fmt.Fprintln(w, errorStyle.Render("Login failed: ")+sessionErrorMessage(state))
		return 1, nil
	}

	fmt.Fprintln(w, successStyle.Render("Logged in"))
	fmt.Fprintln(w, renderField("User", state.User.FullName()))
	fmt.Fprintln(w, renderField("Email", state.User.Email))
	fmt.Fprintln(w, renderField("Role", state.User.UserType))
	return 0, nil
}

func promptCredentials() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&loginEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&loginPassword),
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Student", models.UserTypeStudent),
					huh.NewOption("Tutor", models.UserTypeTutor),
				).
				Value(&loginRole),
		),
	)
	return form.Run()
}

func sessionErrorMessage(state session.State) string {
	if state.LastError == nil {
		return "unknown error"
	}
	return state.LastError.Message
}
