package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Session precondition errors. Submissions failing these are no-ops.

	// ErrPipelineBusy indicates another upload batch or query is in flight.
	ErrPipelineBusy = errors.New("an operation is already in progress")

	// ErrEmptyQuestion indicates the question is blank after trimming.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrNoDocuments indicates a query was submitted before any document was ingested.
	ErrNoDocuments = errors.New("no documents uploaded")

	// ErrEmptyBatch indicates an upload batch with no files.
	ErrEmptyBatch = errors.New("no files to upload")

	// ErrInvalidTransition indicates a pipeline state change the state machine forbids.
	ErrInvalidTransition = errors.New("invalid pipeline transition")

	// Backend errors.

	// ErrUnauthorized indicates the backend rejected the bearer credential.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrBackend indicates the backend answered with an error payload.
	ErrBackend = errors.New("backend error")
)

// BackendError carries the HTTP status and the backend's error text.
// It unwraps to ErrBackend, or ErrUnauthorized for 401/403.
type BackendError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
// Only the backend text is shown so it can be used directly as a rejection reason.
func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Unwrap returns the sentinel matching the status code.
func (e *BackendError) Unwrap() error {
	if e.StatusCode == 401 || e.StatusCode == 403 {
		return ErrUnauthorized
	}
	return ErrBackend
}
