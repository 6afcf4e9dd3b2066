package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-scorer/internal/config"
	"github.com/jonathan/candidate-scorer/internal/db"
	"github.com/jonathan/candidate-scorer/internal/engine"
	"github.com/jonathan/candidate-scorer/internal/llm"
	"github.com/jonathan/candidate-scorer/internal/logger"
	"github.com/jonathan/candidate-scorer/internal/types"
)

var (
	scoreCandidateFile string
	scoreJobFile       string
	scoreResumeFile    string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one candidate from local files",
	Long: `Run the scoring pipeline once without the HTTP server: read a candidate
profile JSON file, an optional job posting JSON file, and a resume text file,
persist the result, and print the composed score as JSON.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreCandidateFile, "candidate", "", "Path to candidate profile JSON (required)")
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Path to job posting JSON")
	scoreCmd.Flags().StringVar(&scoreResumeFile, "resume", "", "Path to resume text file (required)")
	_ = scoreCmd.MarkFlagRequired("candidate")
	_ = scoreCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var candidate types.CandidateProfile
	if err := readJSONFile(scoreCandidateFile, &candidate); err != nil {
		return fmt.Errorf("failed to read candidate file: %w", err)
	}

	var job *types.JobPosting
	if scoreJobFile != "" {
		job = &types.JobPosting{}
		if err := readJSONFile(scoreJobFile, job); err != nil {
			return fmt.Errorf("failed to read job file: %w", err)
		}
	}

	resumeBytes, err := os.ReadFile(scoreResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	gateway := llm.NewGateway(client, log, llm.DefaultGatewayConfig())
	eng := engine.New(gateway, database, log, engine.Config{Timeout: cfg.ScoreTimeout()})

	score, err := eng.Score(ctx, candidate, job, string(resumeBytes))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(score, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
