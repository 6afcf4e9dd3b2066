package db

import (
	"context"
	"strings"
	"testing"

	"github.com/jonathan/candidate-scorer/internal/types"
)

func TestUpsertScore_Validation(t *testing.T) {
	database := &DB{} // no pool; validation must reject before any query

	tests := []struct {
		name    string
		score   *types.CandidateScore
		wantErr string
	}{
		{"nil score", nil, "score is required"},
		{"missing candidate id", &types.CandidateScore{}, "candidate id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := database.UpsertScore(context.Background(), tt.score)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestUnmarshalScorePayload(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantErr   bool
		wantScore bool
		wantID    string
	}{
		{"empty payload", "", false, false, ""},
		{"valid payload", `{"candidate_id":"cand-1","overall_score":72}`, false, true, "cand-1"},
		{"corrupt payload", `{"candidate_id":`, true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record ScoreRecord
			err := unmarshalScorePayload([]byte(tt.payload), &record)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unmarshalScorePayload() error = %v, wantErr %v", err, tt.wantErr)
			}
			if (record.Score != nil) != tt.wantScore {
				t.Fatalf("record.Score presence = %v, want %v", record.Score != nil, tt.wantScore)
			}
			if tt.wantScore && record.Score.CandidateID != tt.wantID {
				t.Errorf("candidate id = %q, want %q", record.Score.CandidateID, tt.wantID)
			}
		})
	}
}
