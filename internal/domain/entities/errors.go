package entities

import "errors"

// Error taxonomy shared by repositories, services and delivery layers.
// Anything not matching one of these is treated as a transient failure.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)
