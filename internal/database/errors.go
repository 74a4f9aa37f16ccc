package database

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors returned by repositories. Handlers match on these with
// errors.Is to choose a response; everything else is a server error.
var (
	// ErrInsufficientSeats is returned when the conditional seat decrement
	// affects zero rows, i.e. the requested seats exceed availability.
	ErrInsufficientSeats = errors.New("not enough seats available")

	// ErrNotFound is returned when a row does not exist. Owner-scoped booking
	// lookups also return it for rows owned by someone else, so callers cannot
	// distinguish "not found" from "not yours".
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned on unique constraint violations (username,
	// travel code, booking reference).
	ErrDuplicate = errors.New("record already exists")
)

// isUniqueViolation reports whether err is a PostgreSQL unique_violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
