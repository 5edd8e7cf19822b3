// Package cache provides the memo table used while rendering icons.
//
// A render cycle calls svg() and svgSprite() many times with the same
// arguments; the memo table maps a key derived from those arguments to the
// rendered markup so the icon file is read and rewritten only once.
//
// Two implementations are provided:
//   - MemoryCache: in-process map, unbounded by default or capacity-limited
//   - NullCache: stores nothing, which disables memoization
//
// Keys come from a Keyer. Identical inputs always produce the identical key;
// the key includes every option that affects the output so that two
// requests differing only in an option never share an entry.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered markup by key.
type Cache interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every value.
	Clear(ctx context.Context) error

	// Close releases resources held by the cache.
	Close() error
}

// StatsReporter is implemented by caches that keep lookup counters.
type StatsReporter interface {
	Stats() Stats
}
