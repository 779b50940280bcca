package timeline

import "errors"

var (
	// ErrInvalidRange is returned when an operation is given a negative
	// duration or an out point before the in point. The model is left
	// unchanged.
	ErrInvalidRange = errors.New("invalid clip range")

	// ErrNotFound is returned when a mutating operation references an
	// unknown clip id.
	ErrNotFound = errors.New("clip not found")
)
