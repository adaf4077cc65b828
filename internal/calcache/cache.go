// Package calcache provides an in-process TTL cache for calendar month
// payloads. Calendar views are read-heavy and rebuilt from the reminders
// table on every request, so a short-lived cache keyed by user and month
// absorbs repeated loads while write paths invalidate per user.
package calcache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"verdant/internal/types"
)

const (
	// DefaultTTL bounds staleness of a cached month. Five minutes keeps
	// the calendar responsive to external changes even if an
	// invalidation is missed.
	DefaultTTL = 300 * time.Second

	// DefaultMaxEntries caps memory use. When full, the oldest entry is
	// evicted on insert.
	DefaultMaxEntries = 1000

	keyPrefix = "calendar:"
)

// Key builds the cache key for one user's calendar month.
func Key(userID string, year int, month time.Month) string {
	return fmt.Sprintf("%s%s:%d:%d", keyPrefix, userID, year, int(month))
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a mutex-guarded TTL cache with insertion-order eviction.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	order      []string
	ttl        time.Duration
	maxEntries int
	clock      types.Clock
}

// New returns a cache with the given TTL and capacity. A nil clock or
// non-positive ttl/maxEntries fall back to the defaults.
func New[V any](ttl time.Duration, maxEntries int, clock types.Clock) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if clock == nil {
		clock = types.RealClock{}
	}
	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clock,
	}
}

// Get returns the cached value for a user's month. Expired entries are
// removed on read and reported as a miss.
func (c *Cache[V]) Get(userID string, year int, month time.Month) (V, bool) {
	key := Key(userID, year, month)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.clock.Now().Sub(e.storedAt) > c.ttl {
		c.remove(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores a month payload, evicting the oldest entry when at capacity.
func (c *Cache[V]) Put(userID string, year int, month time.Month, value V) {
	key := Key(userID, year, month)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.remove(key)
	}
	for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
		c.remove(c.order[0])
	}
	c.entries[key] = entry[V]{value: value, storedAt: c.clock.Now()}
	c.order = append(c.order, key)
}

// InvalidateUser drops every cached month for one user. Other users'
// entries are untouched. Called by reminder write paths since any
// create, update, complete, snooze, or delete can change a month view.
func (c *Cache[V]) InvalidateUser(userID string) {
	prefix := keyPrefix + userID + ":"

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.order[:0]
	for _, key := range c.order {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
	c.order = nil
}

// Len reports the number of live entries, counting expired ones not yet
// evicted.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes a key from both the map and the order slice. Caller
// holds the lock.
func (c *Cache[V]) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
