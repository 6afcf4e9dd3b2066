package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-scorer/internal/types"
)

// BatchItem pairs a candidate with their resume text for batch scoring.
type BatchItem struct {
	Candidate  types.CandidateProfile
	ResumeText string
}

// ScoreBatch scores many candidates against one job with bounded concurrency.
// Results are positionally aligned with items. Runs share nothing but the
// store; the first hard failure cancels the remaining runs and is returned.
func (e *Engine) ScoreBatch(ctx context.Context, items []BatchItem, job *types.JobPosting) ([]*types.CandidateScore, error) {
	results := make([]*types.CandidateScore, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.BatchLimit)

	for i, item := range items {
		g.Go(func() error {
			score, err := e.Score(ctx, item.Candidate, job, item.ResumeText)
			if err != nil {
				return err
			}
			results[i] = score
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
