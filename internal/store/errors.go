package store

import "errors"

var (
	// ErrValidation marks input rejected before it reaches the database.
	ErrValidation = errors.New("validation error")

	// ErrDuplicateUsername is returned when the username is already registered.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
)
