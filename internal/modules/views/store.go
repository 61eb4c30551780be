package views

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable marks a counter store that could not be read or written.
	ErrUnavailable = errors.New("view store unavailable")
	// ErrInvalidKey is returned for keys that fail normalization.
	ErrInvalidKey = errors.New("invalid view key")
)

// Store is a durable per-key view counter.
//
// Get returns 0 and a nil error for an absent key and never creates a record.
// Increment adds one in a single atomic step and returns the new value.
type Store interface {
	Get(ctx context.Context, key string) (int64, error)
	Increment(ctx context.Context, key string) (int64, error)
	All(ctx context.Context) (map[string]int64, error)
}

// Named is implemented by stores that report their backend for logs and metrics.
type Named interface {
	Backend() string
}

func backendOf(s Store) string {
	if n, ok := s.(Named); ok {
		return n.Backend()
	}
	return "unknown"
}
