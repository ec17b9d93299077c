package errors

import "errors"

var (
	ErrNotFound = errors.New("pet not found")

	ErrInvalidID = errors.New("invalid pet ID format")

	// ErrNotAvailable means the conditional reservation matched zero
	// documents: the pet is no longer AVAILABLE or already carries an active
	// visit.
	ErrNotAvailable = errors.New("pet not available")
)
