package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-scorer/internal/types"
)

// ScoreRecord is a stored score row. CreatedAt comes from the first insert for
// the (candidate_id, job_id) pair and survives later upserts.
type ScoreRecord struct {
	ID             uuid.UUID            `json:"id"`
	CandidateID    string               `json:"candidate_id"`
	JobID          string               `json:"job_id"`
	OverallScore   int                  `json:"overall_score"`
	FitmentStatus  string               `json:"fitment_status"`
	ScoringVersion string               `json:"scoring_version"`
	Score          *types.CandidateScore `json:"score"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// UpsertScore inserts or replaces the score for (candidate_id, job_id) in a
// single statement. The conflict update list deliberately omits created_at, so
// the first-write timestamp is preserved without a read-modify-write cycle.
// Both timestamps inside the stored payload are rewritten from the row values
// in the same statement, so reads never see a payload disagreeing with its
// columns. An absent job is the empty string key.
func (db *DB) UpsertScore(ctx context.Context, score *types.CandidateScore) (*ScoreRecord, error) {
	if score == nil {
		return nil, fmt.Errorf("score is required")
	}
	if score.CandidateID == "" {
		return nil, fmt.Errorf("candidate id is required")
	}

	payload, err := json.Marshal(score)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score: %w", err)
	}

	record := ScoreRecord{
		CandidateID:    score.CandidateID,
		JobID:          score.JobID,
		OverallScore:   score.OverallScore,
		FitmentStatus:  score.FitmentStatus,
		ScoringVersion: score.ScoringVersion,
		Score:          score,
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO candidate_scores
		     (candidate_id, job_id, overall_score, fitment_status, scoring_version, payload)
		 VALUES ($1, $2, $3, $4, $5,
		         $6::jsonb || jsonb_build_object('created_at', to_jsonb(NOW()), 'updated_at', to_jsonb(NOW())))
		 ON CONFLICT (candidate_id, job_id) DO UPDATE SET
		     overall_score   = EXCLUDED.overall_score,
		     fitment_status  = EXCLUDED.fitment_status,
		     scoring_version = EXCLUDED.scoring_version,
		     payload         = EXCLUDED.payload
		                       || jsonb_build_object('created_at', to_jsonb(candidate_scores.created_at),
		                                             'updated_at', to_jsonb(NOW())),
		     updated_at      = NOW()
		 RETURNING id, created_at, updated_at`,
		score.CandidateID, score.JobID, score.OverallScore, score.FitmentStatus,
		score.ScoringVersion, payload,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert score: %w", err)
	}

	// Reflect the authoritative timestamps back onto the score.
	score.CreatedAt = record.CreatedAt
	score.UpdatedAt = record.UpdatedAt
	return &record, nil
}

// FindScore retrieves the score for (candidate_id, job_id). Returns nil when
// no row exists.
func (db *DB) FindScore(ctx context.Context, candidateID, jobID string) (*ScoreRecord, error) {
	var record ScoreRecord
	var payload []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, job_id, overall_score, fitment_status, scoring_version,
		        payload, created_at, updated_at
		 FROM candidate_scores WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID,
	).Scan(&record.ID, &record.CandidateID, &record.JobID, &record.OverallScore,
		&record.FitmentStatus, &record.ScoringVersion, &payload,
		&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	if err := unmarshalScorePayload(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListScores retrieves all stored scores for a candidate, newest first.
func (db *DB) ListScores(ctx context.Context, candidateID string) ([]ScoreRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, job_id, overall_score, fitment_status, scoring_version,
		        payload, created_at, updated_at
		 FROM candidate_scores WHERE candidate_id = $1
		 ORDER BY updated_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer rows.Close()

	var records []ScoreRecord
	for rows.Next() {
		var record ScoreRecord
		var payload []byte
		if err := rows.Scan(&record.ID, &record.CandidateID, &record.JobID,
			&record.OverallScore, &record.FitmentStatus, &record.ScoringVersion,
			&payload, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		if err := unmarshalScorePayload(payload, &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func unmarshalScorePayload(payload []byte, record *ScoreRecord) error {
	if len(payload) == 0 {
		return nil
	}
	var score types.CandidateScore
	if err := json.Unmarshal(payload, &score); err != nil {
		return fmt.Errorf("failed to unmarshal score payload: %w", err)
	}
	record.Score = &score
	return nil
}
