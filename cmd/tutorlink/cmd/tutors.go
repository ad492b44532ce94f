// ABOUTME: Tutor browsing commands: list, search, like, save
// ABOUTME: Thin wrappers over the API client's tutor endpoints

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tutorlink/tutorlink-go/models"
)

var (
	tutorSearch   string
	tutorSubject  string
	tutorLocation string
	tutorPriceMin float64
	tutorPriceMax float64
	tutorSaved    bool
	tutorLiked    bool
)

var tutorsCmd = &cobra.Command{
	Use:   "tutors",
	Short: "Browse tutors",
	Long:  `List tutors, optionally filtered by subject, location, price, or free-text search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runTutors(ctx, os.Stdout)
	},
}

var tutorShowCmd = &cobra.Command{
	Use:   "show <tutor-id>",
	Short: "Show a tutor's profile and reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runTutorShow(ctx, os.Stdout, args[0])
	},
}

var likeTutorCmd = &cobra.Command{
	Use:   "like <tutor-id>",
	Short: "Like a tutor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		_, client, _, err := newSession()
		if err != nil {
			return err
		}
		if err := client.LikeTutor(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Liked"))
		return nil
	},
}

var unlikeTutorCmd = &cobra.Command{
	Use:   "unlike <tutor-id>",
	Short: "Remove a like",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		_, client, _, err := newSession()
		if err != nil {
			return err
		}
		if err := client.UnlikeTutor(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Unliked"))
		return nil
	},
}

var saveTutorCmd = &cobra.Command{
	Use:   "save <tutor-id>",
	Short: "Save a tutor for later",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		_, client, _, err := newSession()
		if err != nil {
			return err
		}
		if err := client.SaveTutor(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Saved"))
		return nil
	},
}

var unsaveTutorCmd = &cobra.Command{
	Use:   "unsave <tutor-id>",
	Short: "Remove a tutor from the saved list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		_, client, _, err := newSession()
		if err != nil {
			return err
		}
		if err := client.UnsaveTutor(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Unsaved"))
		return nil
	},
}

var reviewTutorCmd = &cobra.Command{
	Use:   "review <tutor-id> <rating 1-5> <comment>",
	Short: "Leave a review for a tutor",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		rating, err := strconv.Atoi(args[1])
		if err != nil || rating < 1 || rating > 5 {
			return fmt.Errorf("invalid rating %q: must be 1-5", args[1])
		}

		_, client, _, err := newSession()
		if err != nil {
			return err
		}
		if _, err := client.CreateReview(ctx, args[0], rating, args[2]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Review posted"))
		return nil
	},
}

func init() {
	tutorsCmd.Flags().StringVar(&tutorSearch, "search", "", "Free-text search")
	tutorsCmd.Flags().StringVar(&tutorSubject, "subject", "", "Filter by subject")
	tutorsCmd.Flags().StringVar(&tutorLocation, "location", "", "Filter by location")
	tutorsCmd.Flags().Float64Var(&tutorPriceMin, "price-min", 0, "Minimum hourly price")
	tutorsCmd.Flags().Float64Var(&tutorPriceMax, "price-max", 0, "Maximum hourly price")
	tutorsCmd.Flags().BoolVar(&tutorSaved, "saved", false, "Show saved tutors instead")
	tutorsCmd.Flags().BoolVar(&tutorLiked, "liked", false, "Show liked tutors instead")

	tutorsCmd.AddCommand(tutorShowCmd)
	tutorsCmd.AddCommand(likeTutorCmd)
	tutorsCmd.AddCommand(unlikeTutorCmd)
	tutorsCmd.AddCommand(saveTutorCmd)
	tutorsCmd.AddCommand(unsaveTutorCmd)
	tutorsCmd.AddCommand(reviewTutorCmd)
	rootCmd.AddCommand(tutorsCmd)
}

func runTutors(ctx context.Context, w io.Writer) error {
	_, client, _, err := newSession()
	if err != nil {
		return err
	}

	var tutors []models.TutorSummary
	switch {
	case tutorSaved:
		tutors, err = client.GetSavedTutors(ctx)
	case tutorLiked:
		tutors, err = client.GetLikedTutors(ctx)
	default:
		tutors, err = client.GetTutors(ctx, models.TutorSearchParams{
			Search:   tutorSearch,
			Subject:  tutorSubject,
			Location: tutorLocation,
			PriceMin: tutorPriceMin,
			PriceMax: tutorPriceMax,
		})
	}
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(tutors, "", "  ")
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(tutors) == 0 {
		fmt.Fprintln(w, "No tutors found")
		return nil
	}

	for _, t := range tutors {
		fmt.Fprintln(w, formatTutorLine(t))
	}
	return nil
}

func runTutorShow(ctx context.Context, w io.Writer, tutorID string) error {
	_, client, _, err := newSession()
	if err != nil {
		return err
	}

	tutor, err := client.GetTutorDetail(ctx, tutorID)
	if err != nil {
		return err
	}
	reviews, err := client.GetTutorReviews(ctx, tutorID)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]any{"tutor": tutor, "reviews": reviews}, "", "  ")
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintln(w, formatTutorLine(*tutor))
	if tutor.Bio != "" {
		fmt.Fprintln(w, tutor.Bio)
	}
	if len(reviews) > 0 {
		fmt.Fprintln(w, labelStyle.Render("Reviews:"))
		for _, r := range reviews {
			author := "anonymous"
			if r.Student != nil {
				author = r.Student.Name
			}
			fmt.Fprintf(w, "  %d/5 %s: %s\n", r.Rating, labelStyle.Render(author), r.Comment)
		}
	}
	return nil
}

func formatTutorLine(t models.TutorSummary) string {
	name := strings.TrimSpace(t.User.FirstName + " " + t.User.LastName)
	if name == "" {
		name = t.User.Name
	}

	line := titleStyle.Render(name)
	if t.RatingAverage > 0 {
		line += labelStyle.Render(fmt.Sprintf("  %.1f (%d reviews)", t.RatingAverage, t.TotalReviews))
	}
	if t.PriceMin > 0 || t.PriceMax > 0 {
		line += labelStyle.Render(fmt.Sprintf("  %g-%g/hr", t.PriceMin, t.PriceMax))
	}
	if t.Location != "" {
		line += labelStyle.Render("  " + t.Location)
	}
	return line
}
