package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/candidate-scorer/internal/types"
)

// ErrScoreNotFound indicates no stored score exists for the requested key.
type ErrScoreNotFound struct {
	CandidateID string
	JobID       string
}

func (e *ErrScoreNotFound) Error() string {
	if e.JobID != "" {
		return fmt.Sprintf("no score for candidate %s and job %s", e.CandidateID, e.JobID)
	}
	return fmt.Sprintf("no score for candidate %s", e.CandidateID)
}

// ErrBadRequest indicates a malformed request body.
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *ErrScoreNotFound
	var badRequest *ErrBadRequest
	var missingField *types.MissingFieldError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &badRequest),
		errors.As(err, &missingField),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
