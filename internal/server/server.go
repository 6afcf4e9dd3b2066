// Package server provides the HTTP REST API for the candidate scoring engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-scorer/internal/db"
	"github.com/jonathan/candidate-scorer/internal/engine"
	"github.com/jonathan/candidate-scorer/internal/types"
)

// Scorer is the engine surface the handlers depend on.
type Scorer interface {
	Score(ctx context.Context, candidate types.CandidateProfile, job *types.JobPosting, resumeText string) (*types.CandidateScore, error)
	ScoreBatch(ctx context.Context, items []engine.BatchItem, job *types.JobPosting) ([]*types.CandidateScore, error)
}

// Finder is the read-side store surface the handlers depend on.
type Finder interface {
	FindScore(ctx context.Context, candidateID, jobID string) (*db.ScoreRecord, error)
	ListScores(ctx context.Context, candidateID string) ([]db.ScoreRecord, error)
}

// Config holds server configuration
type Config struct {
	Addr string
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	scorer     Scorer
	finder     Finder
	log        *zap.Logger
}

// New creates a new server instance
func New(scorer Scorer, finder Finder, log *zap.Logger, cfg Config) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{scorer: scorer, finder: finder, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /scores", s.handleCreateScore)
	mux.HandleFunc("POST /scores/batch", s.handleBatchScore)
	mux.HandleFunc("GET /scores/{candidate_id}", s.handleGetScores)
	mux.HandleFunc("GET /scores/{candidate_id}/{job_id}", s.handleGetScoreForJob)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for batch scoring runs
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
