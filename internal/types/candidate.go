// Package types defines the shared data structures exchanged between the
// scoring engine, the store, and the HTTP layer.
package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Years holds a years-of-experience figure. Upstream systems deliver it
// as a number, a numeric string, or garbage; unmarshalling never fails and
// anything unparseable collapses to 0.
type Years float64

// UnmarshalJSON accepts numbers and numeric strings. Invalid input yields 0.
func (y *Years) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*y = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		*y = 0
		return nil
	}
	*y = Years(f)
	return nil
}

// MarshalJSON emits the value as a plain JSON number.
func (y Years) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(y))
}

// CandidateProfile is the candidate record consumed read-only by the engine.
type CandidateProfile struct {
	ID                string   `json:"id"`
	Name              string   `json:"name,omitempty"`
	Email             string   `json:"email,omitempty"`
	Skills            []string `json:"skills"`
	YearsOfExperience Years    `json:"years_of_experience"`
}

// JobPosting is the job record consumed read-only by the engine. The engine
// treats a nil posting as scoring without a job context.
type JobPosting struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Skills      []string `json:"skills"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description,omitempty"`
}
