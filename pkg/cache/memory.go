package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process memo table.
//
// With a capacity of zero the table grows without bound for the lifetime of
// the process, which is fine for a single render but not for a long-lived
// host. A positive capacity evicts the oldest inserted entry once full.
// All methods are safe for concurrent use.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = oldest insertion
	hits     int
	misses   int
	now      func() time.Time
}

type memoryEntry struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// Stats reports memo table counters.
type Stats struct {
	Entries int
	Hits    int
	Misses  int
}

// NewMemoryCache creates an in-process cache. capacity <= 0 means unbounded.
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity < 0 {
		capacity = 0
	}
	return &MemoryCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false, nil
	}
	entry := el.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.removeElement(el)
		c.misses++
		return nil, false, nil
	}
	c.hits++
	return entry.data, true, nil
}

// Set stores a value in the cache. Overwriting a key keeps its original
// insertion position.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.data = data
		entry.expiresAt = expiresAt
		return nil
	}

	if c.capacity > 0 {
		for c.order.Len() >= c.capacity {
			c.removeElement(c.order.Front())
		}
	}

	c.entries[key] = c.order.PushBack(&memoryEntry{key: key, data: data, expiresAt: expiresAt})
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
	return nil
}

// Clear removes every entry and resets the counters.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.hits, c.misses = 0, 0
	return nil
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	return c.Clear(context.Background())
}

// Len returns the number of stored entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Entries: c.order.Len(), Hits: c.hits, Misses: c.misses}
}

func (c *MemoryCache) removeElement(el *list.Element) {
	entry := c.order.Remove(el).(*memoryEntry)
	delete(c.entries, entry.key)
}

var (
	_ Cache         = (*MemoryCache)(nil)
	_ StatsReporter = (*MemoryCache)(nil)
)
