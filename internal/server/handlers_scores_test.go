package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-scorer/internal/db"
	"github.com/jonathan/candidate-scorer/internal/engine"
	"github.com/jonathan/candidate-scorer/internal/types"
)

type stubScorer struct {
	score *types.CandidateScore
	err   error
}

func (s *stubScorer) Score(_ context.Context, candidate types.CandidateProfile, job *types.JobPosting, _ string) (*types.CandidateScore, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *s.score
	out.CandidateID = candidate.ID
	if job != nil {
		out.JobID = job.ID
	}
	return &out, nil
}

func (s *stubScorer) ScoreBatch(ctx context.Context, items []engine.BatchItem, job *types.JobPosting) ([]*types.CandidateScore, error) {
	if s.err != nil {
		return nil, s.err
	}
	scores := make([]*types.CandidateScore, len(items))
	for i, item := range items {
		scores[i], _ = s.Score(ctx, item.Candidate, job, item.ResumeText)
	}
	return scores, nil
}

type stubFinder struct {
	records map[string]*db.ScoreRecord
	err     error
}

func (f *stubFinder) FindScore(_ context.Context, candidateID, jobID string) (*db.ScoreRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[candidateID+"|"+jobID], nil
}

func (f *stubFinder) ListScores(_ context.Context, candidateID string) ([]db.ScoreRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []db.ScoreRecord
	for key, record := range f.records {
		if strings.HasPrefix(key, candidateID+"|") {
			out = append(out, *record)
		}
	}
	return out, nil
}

func newTestServer(scorer Scorer, finder Finder) *Server {
	return New(scorer, finder, nil, Config{Addr: ":0"})
}

func TestHandleCreateScore(t *testing.T) {
	scorer := &stubScorer{score: &types.CandidateScore{OverallScore: 72, FitmentStatus: "Good Fit"}}
	srv := newTestServer(scorer, &stubFinder{})

	body := `{"candidate":{"id":"cand-1","name":"Dana","skills":["go"]},"job":{"id":"job-1"},"resume_text":"go developer"}`
	req := httptest.NewRequest(http.MethodPost, "/scores", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got types.CandidateScore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "cand-1", got.CandidateID)
	assert.Equal(t, "job-1", got.JobID)
	assert.Equal(t, 72, got.OverallScore)
}

func TestHandleCreateScore_Validation(t *testing.T) {
	srv := newTestServer(&stubScorer{score: &types.CandidateScore{}}, &stubFinder{})

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing candidate id", `{"candidate":{"name":"Dana"},"resume_text":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/scores", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleCreateScore_EngineFailure(t *testing.T) {
	srv := newTestServer(&stubScorer{err: errors.New("failed to persist score")}, &stubFinder{})

	body := `{"candidate":{"id":"cand-1"},"resume_text":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/scores", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleBatchScore(t *testing.T) {
	scorer := &stubScorer{score: &types.CandidateScore{OverallScore: 55}}
	srv := newTestServer(scorer, &stubFinder{})

	body := `{"job":{"id":"job-1"},"items":[
		{"candidate":{"id":"c1"},"resume_text":"a"},
		{"candidate":{"id":"c2"},"resume_text":"b"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/scores/batch", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Scores []types.CandidateScore `json:"scores"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Scores, 2)
	assert.Equal(t, "c1", got.Scores[0].CandidateID)
	assert.Equal(t, "c2", got.Scores[1].CandidateID)
}

func TestHandleBatchScore_EmptyItems(t *testing.T) {
	srv := newTestServer(&stubScorer{score: &types.CandidateScore{}}, &stubFinder{})

	req := httptest.NewRequest(http.MethodPost, "/scores/batch", strings.NewReader(`{"items":[]}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetScores(t *testing.T) {
	finder := &stubFinder{records: map[string]*db.ScoreRecord{
		"cand-1|":      {CandidateID: "cand-1", OverallScore: 40},
		"cand-1|job-1": {CandidateID: "cand-1", JobID: "job-1", OverallScore: 70},
	}}
	srv := newTestServer(&stubScorer{score: &types.CandidateScore{}}, finder)

	t.Run("list all for candidate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/scores/cand-1", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Scores []db.ScoreRecord `json:"scores"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got.Scores, 2)
	})

	t.Run("narrow by job_id query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/scores/cand-1?job_id=job-1", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got db.ScoreRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 70, got.OverallScore)
	})

	t.Run("by path job id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/scores/cand-1/job-1", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got db.ScoreRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "job-1", got.JobID)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/scores/nobody", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown job", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/scores/cand-1/job-9", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&stubScorer{score: &types.CandidateScore{}}, &stubFinder{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
