package properties

import "errors"

var (
	// ErrNotFound indicates the property does not exist or is not owned by the caller.
	ErrNotFound = errors.New("property not found")
	// ErrInvalidInput indicates a malformed create request.
	ErrInvalidInput = errors.New("invalid input")
)
