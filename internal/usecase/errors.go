package usecase

import "errors"

// Sentinel errors wrapped by the services and mapped to transport codes at
// the HTTP layer.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDependencyUnavailable marks a failure of a collaborator (the
	// replay feed, most often) rather than of this service.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
