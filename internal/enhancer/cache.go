package enhancer

import (
	"sync"
	"time"
)

// CacheTTL is how long an enhancement result stays valid.
const CacheTTL = 12 * time.Hour

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// Cache is a TTL-bounded key/value cache for enhancement results. Entries
// expire lazily: an expired entry is treated as absent on Get and evicted
// there. Safe for concurrent use. The zero value is not usable; construct
// with NewCache.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates an empty cache with the standard TTL.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     CacheTTL,
		now:     time.Now,
	}
}

// Get returns the cached value for key, or false if the key is absent or
// its entry has expired.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return entry.value, true
}

// Set stores value under key with a fresh TTL, overwriting any existing
// entry.
func (c *Cache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// Len reports the number of stored entries, including any not yet evicted
// after expiry.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
