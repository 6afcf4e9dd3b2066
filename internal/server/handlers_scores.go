package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-scorer/internal/engine"
	"github.com/jonathan/candidate-scorer/internal/types"
)

// handleCreateScore scores one candidate and returns the persisted result.
func (s *Server) handleCreateScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	score, err := s.scorer.Score(r.Context(), req.Candidate, req.Job, req.ResumeText)
	if err != nil {
		s.log.Error("scoring failed",
			zap.String("candidate_id", req.Candidate.ID),
			zap.Error(err),
		)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, score)
}

// batchScoreRequest scores many candidates against one optional job.
type batchScoreRequest struct {
	Job   *types.JobPosting `json:"job,omitempty"`
	Items []batchScoreItem  `json:"items"`
}

type batchScoreItem struct {
	Candidate  types.CandidateProfile `json:"candidate"`
	ResumeText string                 `json:"resume_text"`
}

func (s *Server) handleBatchScore(w http.ResponseWriter, r *http.Request) {
	var req batchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Items) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "items must not be empty")
		return
	}

	items := make([]engine.BatchItem, len(req.Items))
	for i, item := range req.Items {
		if item.Candidate.ID == "" {
			s.errorResponse(w, http.StatusBadRequest, (&types.MissingFieldError{Field: "candidate.id"}).Error())
			return
		}
		items[i] = engine.BatchItem{Candidate: item.Candidate, ResumeText: item.ResumeText}
	}

	scores, err := s.scorer.ScoreBatch(r.Context(), items, req.Job)
	if err != nil {
		s.log.Error("batch scoring failed", zap.Int("items", len(items)), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"scores": scores})
}

// handleGetScores returns stored scores for a candidate. With a job_id query
// parameter it narrows to the single (candidate, job) score.
func (s *Server) handleGetScores(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidate_id")

	if jobID := r.URL.Query().Get("job_id"); jobID != "" {
		s.respondWithScore(w, r, candidateID, jobID)
		return
	}

	records, err := s.finder.ListScores(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if len(records) == 0 {
		notFound := &ErrScoreNotFound{CandidateID: candidateID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"scores": records})
}

// handleGetScoreForJob returns the stored score for a (candidate, job) pair.
func (s *Server) handleGetScoreForJob(w http.ResponseWriter, r *http.Request) {
	s.respondWithScore(w, r, r.PathValue("candidate_id"), r.PathValue("job_id"))
}

func (s *Server) respondWithScore(w http.ResponseWriter, r *http.Request, candidateID, jobID string) {
	record, err := s.finder.FindScore(r.Context(), candidateID, jobID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if record == nil {
		notFound := &ErrScoreNotFound{CandidateID: candidateID, JobID: jobID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}
