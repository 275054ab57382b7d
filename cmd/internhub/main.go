// Package main provides the entry point for the InternHub employer API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "internhub",
	Short: "InternHub employer job posting API",
	Long:  "InternHub serves the employer posting flow: draft and publish job postings, validate posting forms, and expose published job cards to students via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
