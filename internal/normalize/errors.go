package normalize

import "fmt"

// ValidationError is returned when a value cannot be reconciled with a target shape
type ValidationError struct {
	Shape   string
	Path    string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	prefix := "normalize"
	if e.Shape != "" {
		prefix = e.Shape
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", prefix, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
