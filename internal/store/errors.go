package store

import (
	"errors"
)

// Common store errors used across all store implementations.
var (
	// ErrCorrupt is returned when a persisted table exists but cannot be decoded.
	// Callers treat it as an absent table.
	ErrCorrupt = errors.New("corrupt feedback table")

	// ErrInvalidEntry is returned when a decoded table contains a key that is
	// not a valid word.
	ErrInvalidEntry = errors.New("invalid table entry")
)

// IsCorrupt checks if the error indicates an undecodable table.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorrupt)
}
