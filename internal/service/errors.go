package service

import "errors"

var (
	// ErrValidation marks rejected user input. The attempted mutation is
	// discarded before any state change.
	ErrValidation = errors.New("validation failed")

	ErrProductNotFound = errors.New("product not found")
	ErrNoActiveSession = errors.New("no active session")
)
