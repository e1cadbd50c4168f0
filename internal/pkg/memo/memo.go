// Package memo caches pure computation results by a digest of their input.
package memo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// namespace scopes the name-based UUIDs produced by Key.
var namespace = uuid.MustParse("5d0c3b4e-6f1a-4c8e-9a57-2b1f0e7d9c31")

// Key derives a deterministic v5 UUID from the JSON encoding of input.
// Equal inputs always produce equal keys.
func Key(input interface{}) (uuid.UUID, error) {
	b, err := json.Marshal(input)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode memo key: %w", err)
	}
	return uuid.NewSHA1(namespace, b), nil
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a TTL map safe for concurrent use. A zero TTL disables storage.
type Cache[V any] struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	entries    map[uuid.UUID]entry[V]
	mu         sync.RWMutex
}

func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uuid.UUID]entry[V]),
	}
}

// Get returns a live entry.
func (c *Cache[V]) Get(key uuid.UUID) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// WithMaxEntries bounds the number of stored entries. Zero means unbounded.
func (c *Cache[V]) WithMaxEntries(n int) *Cache[V] {
	c.maxEntries = n
	return c
}

// Set stores value under key. When the cache is full, expired entries are
// dropped first, then the entry closest to expiry.
func (c *Cache[V]) Set(key uuid.UUID, value V) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = entry[V]{value: value, expiresAt: now.Add(c.ttl)}
}

func (c *Cache[V]) evictLocked(now time.Time) {
	var (
		oldest    uuid.UUID
		oldestExp time.Time
		found     bool
	)
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			continue
		}
		if !found || e.expiresAt.Before(oldestExp) {
			oldest, oldestExp, found = key, e.expiresAt, true
		}
	}
	if len(c.entries) >= c.maxEntries && found {
		delete(c.entries, oldest)
	}
}

// GetOrCompute returns the cached value for key or stores the result of fn.
// The boolean reports a cache hit.
func (c *Cache[V]) GetOrCompute(key uuid.UUID, fn func() V) (V, bool) {
	if v, ok := c.Get(key); ok {
		return v, true
	}
	v := fn()
	c.Set(key, v)
	return v, false
}

// Len counts stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Prune evicts expired entries. Its signature matches cron job functions.
func (c *Cache[V]) Prune(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}

	slog.Debug("Memo cache pruned", "evicted", evicted, "remaining", len(c.entries))
	return nil
}
