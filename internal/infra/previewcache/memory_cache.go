package previewcache

import (
	"context"
	"sync"
	"time"

	"github.com/postforge/postforge/internal/domain/generator"
)

// sweepThreshold triggers an opportunistic purge of expired entries; there
// is no timer-driven eviction.
const sweepThreshold = 100

type cacheEntry struct {
	payload   generator.PreviewEntry
	expiresAt time.Time
}

// MemoryCache is the process-local preview cache used for tests/dev and
// single-instance deployments.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewMemoryCache constructs a cache backed by process memory.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]cacheEntry)}
}

// Get implements generator.PreviewCache.
func (c *MemoryCache) Get(_ context.Context, key string) (generator.PreviewEntry, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return generator.PreviewEntry{}, false, nil
	}
	if hasExpired(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return generator.PreviewEntry{}, false, nil
	}
	return entry.payload, true, nil
}

// Put stores the entry with optional TTL. Concurrent writers to the same
// key race with last-write-wins; entries are idempotent per identical input.
func (c *MemoryCache) Put(_ context.Context, key string, entry generator.PreviewEntry, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.entries[key] = cacheEntry{payload: entry, expiresAt: exp}
	if len(c.entries) > sweepThreshold {
		c.sweepLocked()
	}
	return nil
}

func (c *MemoryCache) sweepLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if !entry.expiresAt.IsZero() && entry.expiresAt.Before(now) {
			delete(c.entries, key)
		}
	}
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ generator.PreviewCache = (*MemoryCache)(nil)
