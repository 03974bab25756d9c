package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches the lookup
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write collides with a unique key
	ErrDuplicate = errors.New("duplicate key")
)

// ErrAPIKeyTaken is a duplicate on the apiKey index only; callers regenerate and retry
var ErrAPIKeyTaken = errors.New("api key taken")
