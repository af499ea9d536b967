package services

import (
	"errors"
	"fmt"

	"github.com/edustack/exam-service/internal/repositories"
	"github.com/edustack/exam-service/internal/validator"
)

// ===== SENTINEL ERRORS =====

var (
	// Not found
	ErrExamNotFound    = errors.New("exam not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrResultNotFound  = errors.New("result not found")

	// Session state
	ErrSessionNotActive        = errors.New("session is not active")
	ErrSessionAlreadySubmitted = errors.New("session already submitted")
	ErrSubmissionInFlight      = errors.New("submission already in flight")
	ErrAnswerIndexOutOfRange   = errors.New("answer index out of range")

	// Upstream failures. Unavailable means the call never landed and may
	// be retried; rejected means the upstream answered with an unusable
	// payload.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrUpstreamRejected    = errors.New("upstream service rejected request")

	// Validation
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationErrors re-exports the validator error type so handlers can
// match it with errors.As against service errors
type ValidationErrors = validator.ValidationErrors

// NewValidationError builds a single-field validation failure
func NewValidationError(field, message string, value interface{}) ValidationErrors {
	return ValidationErrors{{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    "business_logic",
	}}
}

// mapUpstreamError translates repository errors into the service error
// taxonomy. notFound is the sentinel a missing record maps to, which
// differs per domain.
func mapUpstreamError(err error, notFound error) error {
	switch {
	case repositories.IsNotFoundError(err):
		return fmt.Errorf("%w: %v", notFound, err)
	case repositories.IsUnavailableError(err):
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	case errors.Is(err, repositories.ErrMalformedResponse):
		return fmt.Errorf("%w: %v", ErrUpstreamRejected, err)
	default:
		return err
	}
}
