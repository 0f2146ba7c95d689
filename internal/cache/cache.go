// Package cache implements the volatile, TTL-based MemoryCache component
// (spec.md §4.2): every cached value lives only for the lifetime of the
// process, keyed by an opaque string, and carries its own TTL rather than
// relying on a single cache-wide expiration.
//
// Storage is backed by github.com/hashicorp/golang-lru/v2, bounded to a
// configurable entry count so a runaway project tree can't grow the cache
// without limit. Below that bound an entry leaves only when its TTL has
// expired or it is removed explicitly; once the bound is reached, adding a
// new key evicts the least recently used entry, expired or not.
package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/renzora/assetcore/internal/asseterr"
)

// entry mirrors the original cache's (value, created_at, ttl_seconds) shape:
// a ttl_seconds of zero means the entry never expires.
type entry struct {
	value      string
	createdAt  time.Time
	ttlSeconds uint64
}

func newEntry(value string, ttlSeconds uint64) entry {
	return entry{value: value, createdAt: time.Now(), ttlSeconds: ttlSeconds}
}

func (e entry) expired() bool {
	if e.ttlSeconds == 0 {
		return false
	}
	return time.Since(e.createdAt) > time.Duration(e.ttlSeconds)*time.Second
}

// DefaultMaxEntries bounds the cache when no explicit size is configured.
const DefaultMaxEntries = 10000

// Cache is the MemoryCache component. The zero value is not usable; build
// one with New.
type Cache struct {
	store   *lru.Cache[string, entry]
	enabled bool
}

// New creates a Cache with room for maxEntries keys. enabled lets callers
// build a disabled cache (every Get/Set is a no-op) for environments that
// want every validate() call to take the slow path.
func New(maxEntries int, enabled bool) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	store, err := lru.New[string, entry](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("cache: creating store: %w", err)
	}
	return &Cache{store: store, enabled: enabled}, nil
}

// Enabled reports whether the cache is serving reads and writes.
func (c *Cache) Enabled() bool {
	return c.enabled
}

// SetString stores value under key with a 5 minute TTL, the cache's
// default when a caller has no more specific lifetime in mind.
func (c *Cache) SetString(key, value string) {
	c.SetStringTTL(key, value, 300)
}

// SetStringTTL stores value under key with the given TTL in seconds. A
// ttlSeconds of zero means the entry never expires.
func (c *Cache) SetStringTTL(key, value string, ttlSeconds uint64) {
	if !c.enabled {
		return
	}
	c.store.Add(key, newEntry(value, ttlSeconds))
	log.Debug().Str("cache_key", key).Uint64("ttl_seconds", ttlSeconds).Msg("cache: stored")
}

// GetString retrieves the value stored under key. A stale entry is
// reported as a miss and evicted on the spot, matching the check-then-
// remove pattern of the original reader-preferring cache.
func (c *Cache) GetString(key string) (string, bool) {
	if !c.enabled {
		return "", false
	}
	e, ok := c.store.Get(key)
	if !ok {
		return "", false
	}
	if e.expired() {
		c.store.Remove(key)
		log.Debug().Str("cache_key", key).Msg("cache: evicted expired entry on read")
		return "", false
	}
	return e.value, true
}

// ClearAll removes every entry and reports how many were removed.
func (c *Cache) ClearAll() int {
	n := c.store.Len()
	c.store.Purge()
	log.Info().Int("count", n).Msg("cache: cleared all entries")
	return n
}

// ClearProjectCache removes the four per-project keys (manifest, files,
// processed, asset_tree) for project, matching clear_project_cache in the
// original memory cache.
func (c *Cache) ClearProjectCache(project string) int {
	keys := []string{
		keyManifest(project),
		keyFiles(project),
		keyProcessed(project),
		keyAssetTree(project),
	}
	cleared := 0
	for _, k := range keys {
		if c.store.Remove(k) {
			cleared++
		}
	}
	log.Info().Str("project", project).Int("cleared", cleared).Msg("cache: cleared project cache")
	return cleared
}

// Stats reports cache occupancy for diagnostics endpoints.
type Stats struct {
	Enabled     bool `json:"memory_cache_enabled"`
	TotalKeys   int  `json:"total_keys"`
	ExpiredKeys int  `json:"expired_keys"`
	ActiveKeys  int  `json:"active_keys"`
}

// GetStats reports the current key count and how many are stale but not
// yet swept.
func (c *Cache) GetStats() Stats {
	keys := c.store.Keys()
	expired := 0
	for _, k := range keys {
		if e, ok := c.store.Peek(k); ok && e.expired() {
			expired++
		}
	}
	return Stats{
		Enabled:     c.enabled,
		TotalKeys:   len(keys),
		ExpiredKeys: expired,
		ActiveKeys:  len(keys) - expired,
	}
}

// CleanupExpired evicts every currently-stale entry and returns the count
// removed. Call this periodically (see StartSweeper) rather than relying
// solely on the lazy eviction in GetString.
func (c *Cache) CleanupExpired() int {
	removed := 0
	for _, k := range c.store.Keys() {
		if e, ok := c.store.Peek(k); ok && e.expired() {
			c.store.Remove(k)
			removed++
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("cache: swept expired entries")
	}
	return removed
}

// StartSweeper runs CleanupExpired every interval until ctx is cancelled.
// The returned channel closes when the goroutine exits so callers can wait
// for it during shutdown.
func (c *Cache) StartSweeper(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				func() {
					defer func() {
						if r := recover(); r != nil {
							err := fmt.Errorf("cache: sweeper panic: %v: %w", r, asseterr.Poisoned)
							log.Error().Err(err).Msg("cache: sweeper recovered from panic, entries may be inconsistent")
						}
					}()
					c.CleanupExpired()
				}()
			}
		}
	}()
	return done
}
