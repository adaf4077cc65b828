// Package plantintel provides AI-backed plant characteristic inference
// with a TTL cache and conservative default fallback, plus the light
// adjustment factor calculator.
package plantintel

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"verdant/internal/types"
)

// DefaultCacheTTL is how long an inference result stays valid. Plant
// characteristics change slowly, so a week is plenty.
const DefaultCacheTTL = 7 * 24 * time.Hour

type cacheEntry struct {
	chars    types.PlantCharacteristics
	cachedAt time.Time
}

// InferenceCache memoizes characteristic inference results keyed by a
// hash of plant attributes. Safe for concurrent use; lookup, expiry check,
// eviction and insert are serialized under one mutex.
type InferenceCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	clock   types.Clock
}

// NewInferenceCache creates an empty cache with the given TTL. A zero ttl
// falls back to DefaultCacheTTL.
func NewInferenceCache(ttl time.Duration, clock types.Clock) *InferenceCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if clock == nil {
		clock = types.RealClock{}
	}
	return &InferenceCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// CacheKey produces a stable key from the attributes that influence an
// inference result.
func CacheKey(species, location, notes, light string) string {
	raw := strings.Join([]string{species, location, notes, light}, "|")
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached characteristics for key, or nil on a miss.
// Expired entries are evicted on read.
func (c *InferenceCache) Get(key string) *types.PlantCharacteristics {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil
	}
	if c.clock.Now().Sub(entry.cachedAt) > c.ttl {
		delete(c.entries, key)
		return nil
	}
	chars := entry.chars
	return &chars
}

// Put stores characteristics under key, replacing any existing entry.
func (c *InferenceCache) Put(key string, chars types.PlantCharacteristics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{chars: chars, cachedAt: c.clock.Now()}
}

// Clear removes all entries.
func (c *InferenceCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of entries currently held, expired or not.
func (c *InferenceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
