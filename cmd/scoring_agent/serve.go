package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-scorer/internal/config"
	"github.com/jonathan/candidate-scorer/internal/db"
	"github.com/jonathan/candidate-scorer/internal/engine"
	"github.com/jonathan/candidate-scorer/internal/llm"
	"github.com/jonathan/candidate-scorer/internal/logger"
	"github.com/jonathan/candidate-scorer/internal/scoring"
	"github.com/jonathan/candidate-scorer/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes scoring and score-lookup endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Load()
	if servePort != "" {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	modelConfig := llm.DefaultConfig()
	if cfg.GeminiModel != "" {
		modelConfig = modelConfig.WithModel(llm.TierStandard, cfg.GeminiModel)
	}
	client, err := llm.NewGeminiClient(ctx, modelConfig, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	gatewayConfig := llm.DefaultGatewayConfig()
	gatewayConfig.MaxAttempts = cfg.RetryAttempts
	gateway := llm.NewGateway(client, log, gatewayConfig)

	eng := engine.New(gateway, database, log, engine.Config{
		Weights:    scoring.DefaultWeights(),
		Timeout:    cfg.ScoreTimeout(),
		BatchLimit: cfg.BatchLimit,
	})

	srv := server.New(eng, database, log, server.Config{Addr: cfg.Addr()})
	return srv.Start()
}
