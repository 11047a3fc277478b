package services

import "errors"

// Service error taxonomy. Handlers translate these with errors.Is; anything
// else is a server error. Duplicate-toggle conflicts never surface here:
// the toggle engine resolves them to the already-achieved state.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrForbidden       = errors.New("forbidden")
)
