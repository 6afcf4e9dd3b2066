// Package engine orchestrates a scoring run: deterministic metrics, the
// grounded generation call, response sanitization, composition, and storage.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-scorer/internal/db"
	"github.com/jonathan/candidate-scorer/internal/logger"
	"github.com/jonathan/candidate-scorer/internal/sanitize"
	"github.com/jonathan/candidate-scorer/internal/scoring"
	"github.com/jonathan/candidate-scorer/internal/types"
)

// Gateway produces raw model output for a prompt. Implementations own retry
// behavior; the engine treats any returned error as final for the run.
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Store persists composed scores.
type Store interface {
	UpsertScore(ctx context.Context, score *types.CandidateScore) (*db.ScoreRecord, error)
}

// Config tunes a scoring engine.
type Config struct {
	// Weights holds the composition constants.
	Weights scoring.Weights
	// Timeout bounds the generation part of a scoring run.
	Timeout time.Duration
	// StoreTimeout bounds persistence, independent of the run budget.
	StoreTimeout time.Duration
	// BatchLimit caps concurrent runs inside ScoreBatch.
	BatchLimit int
}

// DefaultConfig returns the canonical engine settings.
func DefaultConfig() Config {
	return Config{
		Weights:      scoring.DefaultWeights(),
		Timeout:      60 * time.Second,
		StoreTimeout: 10 * time.Second,
		BatchLimit:   4,
	}
}

// Engine scores candidates. Safe for concurrent use.
type Engine struct {
	gateway  Gateway
	store    Store
	composer *scoring.Composer
	config   Config
	log      *zap.Logger
}

// New creates an Engine. Zero config fields fall back to defaults; a nil
// logger disables logging.
func New(gateway Gateway, store Store, log *zap.Logger, config Config) *Engine {
	defaults := DefaultConfig()
	if config.Weights == (scoring.Weights{}) {
		config.Weights = defaults.Weights
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.StoreTimeout <= 0 {
		config.StoreTimeout = defaults.StoreTimeout
	}
	if config.BatchLimit <= 0 {
		config.BatchLimit = defaults.BatchLimit
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		gateway:  gateway,
		store:    store,
		composer: scoring.NewComposer(config.Weights),
		config:   config,
		log:      log,
	}
}

// Score runs the full pipeline for one candidate and persists the result.
// Generation or sanitization failures degrade the run to deterministic-only
// composition; storage failures are hard errors.
func (e *Engine) Score(ctx context.Context, candidate types.CandidateProfile, job *types.JobPosting, resumeText string) (*types.CandidateScore, error) {
	if candidate.ID == "" {
		return nil, &types.MissingFieldError{Field: "candidate.id"}
	}

	requestID := uuid.NewString()[:8]
	start := time.Now()
	log := e.log.With(
		zap.String("request_id", requestID),
		zap.String("candidate_id", candidate.ID),
	)

	genCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	var jobSkills, jobKeywords []string
	if job != nil {
		jobSkills = job.Skills
		jobKeywords = job.Keywords
		log = log.With(zap.String("job_id", job.ID))
	}

	skill := scoring.SkillScore(candidate.Skills, jobSkills)
	experience := scoring.ExperienceScore(float64(candidate.YearsOfExperience), e.config.Weights.ExperienceCapYears)
	density := scoring.KeywordDensity(resumeText, jobKeywords)

	prompt := scoring.BuildPrompt(candidate, job, resumeText, skill, experience, density.Density)

	subjective, degraded := e.generateSubjective(genCtx, log, prompt)

	score := e.composer.Compose(scoring.Input{
		Candidate:  candidate,
		Job:        job,
		Skill:      skill,
		Experience: experience,
		Density:    density,
		Subjective: subjective,
		Degraded:   degraded,
	})

	// A run that spent its whole budget on generation has an expired context
	// by now, and a degraded score must still be persisted. Persistence runs
	// on its own deadline, detached from the generation one.
	storeCtx, cancelStore := context.WithTimeout(context.WithoutCancel(ctx), e.config.StoreTimeout)
	defer cancelStore()

	record, err := e.store.UpsertScore(storeCtx, score)
	if err != nil {
		return nil, fmt.Errorf("failed to persist score: %w", err)
	}
	if record != nil {
		score.CreatedAt = record.CreatedAt
		score.UpdatedAt = record.UpdatedAt
	}

	log.Info("candidate scored",
		zap.Int("overall_score", score.OverallScore),
		zap.String("fitment_status", score.FitmentStatus),
		zap.String("scoring_version", score.ScoringVersion),
		zap.Bool("degraded", degraded),
		zap.Duration("duration", time.Since(start)),
	)
	return score, nil
}

// generateSubjective runs the generation and sanitization steps. A nil map
// with degraded=true means the composition falls back to deterministic-only.
func (e *Engine) generateSubjective(ctx context.Context, log *zap.Logger, prompt string) (map[string]any, bool) {
	raw, err := e.gateway.Generate(ctx, prompt)
	if err != nil {
		log.Warn("generation unavailable, composing deterministic-only score", zap.Error(err))
		return nil, true
	}

	payload, err := sanitize.Sanitize(raw)
	if err != nil {
		log.Warn("model output unusable, composing deterministic-only score",
			zap.String("output_preview", logger.TruncateForLog(raw, 200)),
			zap.Error(err),
		)
		return nil, true
	}

	if warnings := sanitize.SchemaWarnings(payload); len(warnings) > 0 {
		log.Debug("model payload deviates from expected schema", zap.Strings("warnings", warnings))
	}
	return payload, false
}
