package dao

import "errors"

var (
	// ErrValidation marks a missing or empty required field. Nothing is
	// written when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to a room, user or message that does
	// not exist.
	ErrNotFound = errors.New("not found")
)
