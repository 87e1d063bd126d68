package domain

import "errors"

// Error kinds surfaced across the service boundary. Callers match with
// errors.Is; details are attached by wrapping with fmt.Errorf("%w: ...").
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidState       = errors.New("invalid state")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUnauthorized       = errors.New("unauthorized")
)
