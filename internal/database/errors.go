package database

import "errors"

var (
	// ErrCodeExists is returned when an insert collides with a short code
	// that is already assigned to another record.
	ErrCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when no record matches the requested
	// short code or original URL.
	ErrURLNotFound = errors.New("url not found")
)
