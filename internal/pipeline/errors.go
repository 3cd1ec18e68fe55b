package pipeline

import (
	"errors"
	"fmt"

	"github.com/jonathan/resu/internal/pipeline/steps"
)

// ErrConcurrencyRejected is returned when a run is already in flight
var ErrConcurrencyRejected = errors.New("a generation is already in progress")

// RequestError reports a malformed Start or Confirm request
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid request: %s", e.Message)
	}
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Message)
}

// ErrorKind classifies a step failure
type ErrorKind string

// Step failure kinds
const (
	// KindValidation: the completion could not be normalized, or referenced data that does not exist
	KindValidation ErrorKind = "validation"
	// KindExternal: the Completion Service failed, timed out or returned nothing
	KindExternal ErrorKind = "external"
	// KindInternal: profile loading, input encoding or persistence failed
	KindInternal ErrorKind = "internal"
)

// StepError reports the step that aborted a run
type StepError struct {
	Step    steps.Name
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *StepError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s step failed: %s: %v", e.Step, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s step failed: %s", e.Step, e.Message)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

func stepError(step steps.Name, kind ErrorKind, cause error, format string, args ...any) *StepError {
	return &StepError{Step: step, Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
