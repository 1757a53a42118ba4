package host

import "errors"

// Errors returned by host primitives.
var (
	// ErrInvalidRange indicates a paint request with a column span
	// outside the target line.
	ErrInvalidRange = errors.New("column span out of range")

	// ErrLineOutOfRange indicates a line index outside the buffer.
	ErrLineOutOfRange = errors.New("line index out of range")
)
