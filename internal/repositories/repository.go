package repositories

import (
	"context"
	"errors"
)

// Repository aggregates every repository the services depend on
type Repository interface {
	// Upstream reads
	Exam() ExamRepository
	Result() ResultRepository

	// Upstream writes
	Submission() SubmissionRepository
	TextGen() TextGenRepository

	// Local state
	Session() SessionRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ===== SENTINEL ERRORS =====

var (
	// ErrNotFound means the requested record does not exist upstream or
	// locally. Malformed upstream records are indistinguishable from
	// missing ones and map here too.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable means the upstream could not be reached or answered
	// with a failure status
	ErrUnavailable = errors.New("upstream unavailable")

	// ErrMalformedResponse means the upstream answered but the payload is
	// missing required fields
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// IsNotFoundError reports whether err is a missing-record error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailableError reports whether err is an upstream transport failure
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
