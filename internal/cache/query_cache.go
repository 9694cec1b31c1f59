// Package cache holds the in-process query cache shared by the services.
// Cached reads are keyed hierarchically (e.g. "bookings/<user-id>") and stay
// valid for a stale-time window; mutations invalidate affected key prefixes
// so the next read refetches. Staleness is resolved by refetch after
// invalidate, never by locking writers out.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Key joins parts into a hierarchical cache key.
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

type QueryCache struct {
	staleTime time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]queryEntry
}

type queryEntry struct {
	value    any
	storedAt time.Time
}

func NewQueryCache(staleTime time.Duration) *QueryCache {
	if staleTime <= 0 {
		staleTime = 5 * time.Minute
	}
	return &QueryCache{
		staleTime: staleTime,
		now:       time.Now,
		entries:   make(map[string]queryEntry),
	}
}

// Get returns the cached value when the entry is still fresh. Stale entries
// are dropped on read.
func (c *QueryCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.staleTime {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores the value under key with a fresh timestamp.
func (c *QueryCache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = queryEntry{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate drops every entry whose key equals one of the prefixes or lives
// under it ("bookings" also drops "bookings/<user>"). Returns the number of
// entries removed.
func (c *QueryCache) Invalidate(prefixes ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		for _, prefix := range prefixes {
			if key == prefix || strings.HasPrefix(key, prefix+"/") {
				delete(c.entries, key)
				removed++
				break
			}
		}
	}
	return removed
}

// Clear drops everything.
func (c *QueryCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]queryEntry)
	c.mu.Unlock()
}

// Len reports the number of stored entries, stale ones included until read.
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// SetNowFunc overrides the clock. Tests only.
func (c *QueryCache) SetNowFunc(now func() time.Time) {
	c.now = now
}
