package documents

import "errors"

var (
	// ErrNotFound indicates the document does not exist or is not owned by the caller.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput indicates a malformed request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthenticated indicates a write was attempted without an identity.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUnavailable is the generic read failure; the underlying store error
	// is logged, never surfaced.
	ErrUnavailable = errors.New("failed to fetch documents")
	// ErrWriteFailed is the generic write failure, same logging policy.
	ErrWriteFailed = errors.New("failed to save document")
)
