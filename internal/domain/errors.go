package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP statuses with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateEmail      = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInsufficientTickets = errors.New("not enough tickets available")
)
