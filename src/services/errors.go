package services

import "errors"

var (
	// ErrNotFound is returned when a record looked up by key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuery is returned for unknown export columns or aggregates.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnresolvedPlaceholder is returned when static page text names a
	// placeholder with no value.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("session expired or revoked")
)
