package llm

import "fmt"

// UnavailableError indicates the generation service could not produce output
// after all retry attempts. Callers recover by composing a deterministic-only
// score; this error never carries partial model output.
type UnavailableError struct {
	Attempts int
	Cause    error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation unavailable after %d attempts: %v", e.Attempts, e.Cause)
	}
	return fmt.Sprintf("generation unavailable after %d attempts", e.Attempts)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}
