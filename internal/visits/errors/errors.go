package errors

import "errors"

var (
	ErrNotFound = errors.New("visit not found")

	ErrInvalidID = errors.New("invalid visit ID format")

	// ErrNotOpen means the conditional claim matched zero documents: the
	// visit is already claimed, completed, or does not exist.
	ErrNotOpen = errors.New("visit not open")

	// ErrNotInProgress means the conditional completion matched zero
	// documents: the visit is no longer OPEN or CLAIMED.
	ErrNotInProgress = errors.New("visit not in progress")
)
