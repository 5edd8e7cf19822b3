package cache

import (
	"context"
	"sync/atomic"
	"time"
)

// NullCache disables memoization: every lookup misses and nothing is kept.
// It still counts lookups so a render can report how many icons it built.
type NullCache struct {
	misses atomic.Int64
}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() *NullCache {
	return &NullCache{}
}

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.misses.Add(1)
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Clear resets the lookup counter.
func (c *NullCache) Clear(ctx context.Context) error {
	c.misses.Store(0)
	return nil
}

func (c *NullCache) Close() error { return nil }

// Stats reports the lookups since the last Clear, all of them misses.
func (c *NullCache) Stats() Stats {
	return Stats{Misses: int(c.misses.Load())}
}

var (
	_ Cache         = (*NullCache)(nil)
	_ StatsReporter = (*NullCache)(nil)
)
