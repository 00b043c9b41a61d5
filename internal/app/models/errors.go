package models

import "errors"

// Domain specific errors surfaced by the upstream client and handlers.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrBadRequest      = errors.New("bad request")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidScore    = errors.New("score must be between 1 and 5")
	ErrEmptyMessage    = errors.New("message cannot be empty")
)
