// Package availability resolves whether fully-qualified domains are
// registered. It consults an ordered list of independent providers with
// retry and backoff, shares a process-wide TTL cache across invocations,
// and offers a concurrency-bounded batch variant. A check never fails:
// provider errors degrade into low-confidence results instead.
package availability

import (
	"sync"
	"time"

	"namolux/pkg/domain"
)

// cacheEntry pairs a verdict with its expiry.
type cacheEntry struct {
	result    domain.AvailabilityCheckResult
	expiresAt time.Time
}

// Cache is a thread-safe TTL cache of availability verdicts keyed by
// fully-qualified domain. Eviction is lazy: expired entries are dropped on
// lookup. The clock is injected so tests can control expiry.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCache creates a cache using the given clock. A nil clock means
// time.Now.
func NewCache(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}

	return &Cache{entries: map[string]cacheEntry{}, now: now}
}

// Get returns the cached verdict for the domain if present and unexpired.
// Expired entries are removed on the spot.
func (c *Cache) Get(fqdn string) (domain.AvailabilityCheckResult, bool) {
	c.mu.RLock()
	e, ok := c.entries[fqdn]
	c.mu.RUnlock()
	if !ok {
		return domain.AvailabilityCheckResult{}, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// re-check under the write lock: a concurrent Set may have refreshed it
		if cur, still := c.entries[fqdn]; still && c.now().After(cur.expiresAt) {
			delete(c.entries, fqdn)
		}
		c.mu.Unlock()

		return domain.AvailabilityCheckResult{}, false
	}

	return e.result, true
}

// Set stores a verdict with the given TTL. Concurrent writers for the same
// domain race last-writer-wins, which is acceptable for a cache.
func (c *Cache) Set(fqdn string, result domain.AvailabilityCheckResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[fqdn] = cacheEntry{result: result, expiresAt: c.now().Add(ttl)}
}

// Len reports the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
