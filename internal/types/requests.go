package types

import (
	"github.com/go-playground/validator/v10"
)

// ScoreRequest is the payload accepted by the scoring endpoint and the CLI.
// The resume text arrives already extracted; this service never parses files.
type ScoreRequest struct {
	Candidate  CandidateProfile `json:"candidate" validate:"required"`
	Job        *JobPosting      `json:"job,omitempty"`
	ResumeText string           `json:"resume_text"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	if r.Candidate.ID == "" {
		return &MissingFieldError{Field: "candidate.id"}
	}
	validate := validator.New()
	return validate.Struct(r)
}

// MissingFieldError indicates a required request field was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}
