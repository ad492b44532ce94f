// ABOUTME: Register command with interactive account creation form
// ABOUTME: Creates a backend account and stores the issued session

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
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long:  `Create a TutorLink account interactively and store the issued session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode, err := runRegister(ctx, os.Stdout)
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
	rootCmd.AddCommand(registerCmd)
}

func runRegister(ctx context.Context, w io.Writer) (int, error) {
	req, err := promptRegistration()
	if err != nil {
		return 0, err
	}

	ctrl, _, _, err := newSession()
	if err != nil {
		return 0, err
	}

	state := ctrl.Register(ctx, req)
	if !state.Authenticated() {
		fmt.Fprintln(w, errorStyle.Render("Registration failed: ")+sessionErrorMessage(state))
		return 1, nil
	}

	fmt.Fprintln(w, successStyle.Render("Account created"))
	fmt.Fprintln(w, renderField("User", state.User.FullName()))
	fmt.Fprintln(w, renderField("Email", state.User.Email))
	fmt.Fprintln(w, renderField("Role", state.User.UserType))
	return 0, nil
}

func promptRegistration() (models.RegisterRequest, error) {
	var req models.RegisterRequest

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&req.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&req.Password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&req.PasswordConfirm),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&req.FirstName),
			huh.NewInput().
				Title("Last name").
				Value(&req.LastName),
			huh.NewInput().
				Title("Phone (optional)").
				Value(&req.Phone),
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Student", models.UserTypeStudent),
					huh.NewOption("Tutor", models.UserTypeTutor),
				).
				Value(&req.UserType),
		),
	)

	if err := form.Run(); err != nil {
		return models.RegisterRequest{}, err
	}
	if req.Password != req.PasswordConfirm {
		return models.RegisterRequest{}, fmt.Errorf("passwords do not match")
	}
	return req, nil
}
