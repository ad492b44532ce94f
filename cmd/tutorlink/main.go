// ABOUTME: Entry point for the tutorlink CLI
// ABOUTME: Loads .env, configures logging and Sentry, then dispatches commands

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tutorlink/tutorlink-go/cmd/tutorlink/cmd"
	"github.com/tutorlink/tutorlink-go/logger"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	logger.Init()

	if err := logger.InitSentry(os.Getenv("SENTRY_DSN"), os.Getenv("TUTORLINK_ENV")); err != nil {
		fmt.Fprintf(os.Stderr, "warning: sentry init failed: %v\n", err)
	}
	defer logger.FlushSentry()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
