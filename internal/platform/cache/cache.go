// Package cache provides a small concurrency-safe in-memory cache with
// per-entry TTL. The task service uses it as a short-lived read-through
// cache keyed by (task id, user id); entries that are never invalidated
// simply expire.
package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache maps string keys to values with a fixed time-to-live.
// Safe for concurrent use.
type TTLCache[V any] struct {
	mu    sync.Mutex
	items map[string]item[V]
	ttl   time.Duration

	// timeFunc is injectable so tests can expire entries with a fake clock.
	timeFunc func() time.Time
}

// New creates a TTLCache whose entries live for ttl.
func New[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		items:    make(map[string]item[V]),
		ttl:      ttl,
		timeFunc: time.Now,
	}
}

// NewWithClock creates a TTLCache that reads time from the given function.
func NewWithClock[V any](ttl time.Duration, timeFunc func() time.Time) *TTLCache[V] {
	c := New[V](ttl)
	c.timeFunc = timeFunc
	return c
}

// Get returns the live value for key, if any. Expired entries are removed
// on access.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.timeFunc().Before(it.expiresAt) {
		delete(c.items, key)
		var zero V
		return zero, false
	}
	return it.value, true
}

// Set stores value under key with a fresh TTL.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item[V]{value: value, expiresAt: c.timeFunc().Add(c.ttl)}
}

// Delete removes the entry for key, if present.
func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}
