package sanitize

import "fmt"

// InvalidOutputError indicates the model's reply could not be reduced to a
// JSON object. It is deliberately a different type from the generation
// gateway's transport error: callers recover from the two differently.
type InvalidOutputError struct {
	Message string
	Cause   error
}

func (e *InvalidOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid model output: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid model output: %s", e.Message)
}

func (e *InvalidOutputError) Unwrap() error {
	return e.Cause
}
