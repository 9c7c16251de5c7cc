package models

import "time"

// URL represents a shortened URL and its associated metadata.
type URL struct {
	// ID is the unique identifier for the shortened URL record.
	ID int64
	// Code is the short code associated with the original URL.
	Code string
	// OriginalURL is the original, full-length URL that the short code points to.
	OriginalURL string
	// Clicks tracks the number of times the short code has been resolved.
	Clicks int64
	// CreatedAt is the UTC timestamp indicating when the record was created.
	CreatedAt time.Time
}
