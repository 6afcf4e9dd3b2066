package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-scorer/internal/logger"
)

// GatewayConfig tunes the retry behavior of the generation gateway.
type GatewayConfig struct {
	// Tier selects the provider model used for scoring prompts.
	Tier ModelTier
	// MaxAttempts bounds the total number of provider calls per prompt.
	MaxAttempts int
	// BaseDelay is the wait after the first failure; it doubles per attempt.
	BaseDelay time.Duration
	// MaxDelay caps the doubled backoff delay.
	MaxDelay time.Duration
}

// DefaultGatewayConfig returns the canonical retry settings.
func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{
		Tier:        TierStandard,
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    4 * time.Second,
	}
}

// Gateway wraps a Client with sequential retry and exponential backoff.
// Empty model output is treated as a transient failure and retried like a
// transport error. Retries are never speculative or parallel.
type Gateway struct {
	client Client
	config GatewayConfig
	log    *zap.Logger
}

// NewGateway creates a Gateway. Zero config fields fall back to defaults.
func NewGateway(client Client, log *zap.Logger, config GatewayConfig) *Gateway {
	defaults := DefaultGatewayConfig()
	if config.Tier == "" {
		config.Tier = defaults.Tier
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.BaseDelay <= 0 {
		config.BaseDelay = defaults.BaseDelay
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = defaults.MaxDelay
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{client: client, config: config, log: log}
}

// Generate sends the prompt and returns the model's raw text. After the
// retry budget is exhausted it fails with *UnavailableError.
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	delay := g.config.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", &UnavailableError{Attempts: attempt - 1, Cause: err}
		}

		output, err := g.client.GenerateContent(ctx, prompt, g.config.Tier)
		if err == nil && strings.TrimSpace(output) == "" {
			err = errors.New("model returned empty output")
		}
		if err == nil {
			return output, nil
		}
		lastErr = err

		g.log.Warn("generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", g.config.MaxAttempts),
			zap.String("prompt_preview", logger.TruncateForLog(prompt, 120)),
			zap.Error(err),
		)

		if attempt < g.config.MaxAttempts {
			if err := waitFor(ctx, delay); err != nil {
				return "", &UnavailableError{Attempts: attempt, Cause: err}
			}
			delay *= 2
			if delay > g.config.MaxDelay {
				delay = g.config.MaxDelay
			}
		}
	}

	return "", &UnavailableError{Attempts: g.config.MaxAttempts, Cause: lastErr}
}

// waitFor sleeps for d unless the context is cancelled first.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
