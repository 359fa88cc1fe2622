package enhancer

import (
	"errors"
	"fmt"
)

// ErrExternalService is returned when the model call fails for a reason the
// service does not recognize.
var ErrExternalService = errors.New("external service error")

// ValidationError represents a validation error with a field name. It is
// always recoverable by the caller correcting input and is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// EnhancementError wraps an unexpected failure from the model call,
// preserving the original message for diagnostics. Recognized error kinds
// (validation errors, the LLM client's own errors) are never wrapped.
type EnhancementError struct {
	Err error
}

func (e *EnhancementError) Error() string {
	return fmt.Sprintf("enhancement failed: %v", e.Err)
}

func (e *EnhancementError) Unwrap() error {
	return e.Err
}

// Is marks EnhancementError as an external-service failure so callers can
// match it with errors.Is(err, ErrExternalService).
func (e *EnhancementError) Is(target error) bool {
	return target == ErrExternalService
}
