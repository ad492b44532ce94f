// ABOUTME: Subjects and platform stats commands
// ABOUTME: Reads the cached catalog endpoints; no login required server-side

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List the subject catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runSubjects(ctx, os.Stdout)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show platform counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runStats(ctx, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runSubjects(ctx context.Context, w io.Writer) error {
	_, client, _, err := newSession()
	if err != nil {
		return err
	}

	subjects, err := client.GetSubjects(ctx)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(subjects, "", "  ")
		fmt.Fprintln(w, string(data))
		return nil
	}

	for _, s := range subjects {
		fmt.Fprintln(w, s.Name)
	}
	return nil
}

func runStats(ctx context.Context, w io.Writer) error {
	_, client, _, err := newSession()
	if err != nil {
		return err
	}

	stats, err := client.GetPlatformStats(ctx)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintln(w, renderField("Tutors", fmt.Sprintf("%d", stats.TotalTutors)))
	fmt.Fprintln(w, renderField("Students", fmt.Sprintf("%d", stats.TotalStudents)))
	fmt.Fprintln(w, renderField("Subjects", fmt.Sprintf("%d", stats.TotalSubjects)))
	fmt.Fprintln(w, renderField("Reviews", fmt.Sprintf("%d", stats.TotalReviews)))
	return nil
}
