// Package main provides the entry point for the candidate scoring service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scoring_agent",
	Short: "Candidate Scoring Engine",
	Long:  "Candidate Scoring Engine blends deterministic resume metrics with model-evaluated subjective scores into a single bounded fitment score per candidate and job.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
