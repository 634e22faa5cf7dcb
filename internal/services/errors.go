package services

import "errors"

// Failure classes surfaced to callers. Services wrap these with context; the
// transport layer maps them to status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
