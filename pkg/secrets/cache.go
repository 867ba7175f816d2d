package secrets

import (
	"context"
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a concurrency-safe map whose entries expire after a TTL.
// In-memory sessions are kept in one.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration
	now     func() time.Time
}

// NewCache returns a cache whose entries live for ttl unless set with SetFor.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value for key. Expired entries read as missing and are dropped.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, still := c.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the cache TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.SetFor(key, value, c.ttl)
}

// SetFor stores value under key for ttl.
func (c *Cache[T]) SetFor(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[T]{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes key.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len counts stored entries, including expired ones not yet swept.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep drops every expired entry and reports how many were removed.
func (c *Cache[T]) Sweep() int {
	now := c.now()
	removed := 0

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (c *Cache[T]) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-ctx.Done():
			return
		}
	}
}
