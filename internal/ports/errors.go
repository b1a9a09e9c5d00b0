package ports

import "errors"

var (
	// ErrNotFound reports a package ID or address with no matching entry.
	ErrNotFound = errors.New("not found")
	// ErrInvalidData reports a distance cell that is missing or not a non-negative number.
	ErrInvalidData = errors.New("invalid distance data")
	// ErrOutOfRange reports an address index outside the distance matrix.
	ErrOutOfRange = errors.New("index out of range")
)
