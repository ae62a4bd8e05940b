// Package entity defines the entities and errors used in the application.
// It includes the URL struct, which represents a shortened URL owned by a user,
// the Click struct for a single resolution of a short code and the DailyCount
// bucket produced by analytics queries.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrShortCodeExists is returned when attempting to create a URL with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when a URL with the specified short code cannot be found.
	ErrURLNotFound = errors.New("url not found")
	// ErrInvalidURL is returned when the original URL is not an absolute http or https URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrAllocationExhausted is returned when no free short code was found within the retry budget.
	ErrAllocationExhausted = errors.New("short code allocation exhausted")
	// ErrUnauthorized is returned when the caller is not allowed to read or create the requested data.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidRange is returned when the start date of a range is after its end date.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrStorageUnavailable is returned when the storage backend fails.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// URL represents a shortened URL.
type URL struct {
	ID          int64     // ID is the unique identifier of the URL in the database.
	ShortCode   string    // ShortCode is the generated code used to shorten the original URL.
	OriginalURL string    // OriginalURL is the full URL that the short code resolves to.
	OwnerID     string    // OwnerID identifies the user who created the short link.
	URLStats              // URLStats contains statistics about the URL.
	CreatedAt   time.Time // CreatedAt is the timestamp when the URL was created.
}

// URLStats contains statistics related to a shortened URL.
type URLStats struct {
	ClickCount int64 // ClickCount is the number of times the shortened URL has been resolved.
}

// OwnedBy reports whether the URL belongs to the given owner.
func (u *URL) OwnedBy(ownerID string) bool {
	return ownerID != "" && u.OwnerID == ownerID
}
