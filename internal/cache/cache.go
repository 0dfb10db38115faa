package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/JustJay7/datajud-bridge/internal/datajud"
)

// Cache stores successful DataJud responses.
type Cache interface {
	Get(key string) (*datajud.SearchResponse, bool)
	Set(key string, value *datajud.SearchResponse) error
	Stats() CacheStats
	Enabled() bool
}

type CacheStats struct {
	Enabled    bool      `json:"enabled"`
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Size       int       `json:"size"`
	LastAccess time.Time `json:"last_access"`
}

type LRUCache struct {
	cache   *cache.Cache
	mu      sync.Mutex
	stats   CacheStats
	maxSize int
}

// NewCache returns a TTL cache bounded to maxSize entries. A non-positive
// size or ttl returns a cache that stores nothing.
func NewCache(maxSize int, ttl time.Duration) Cache {
	if maxSize <= 0 || ttl <= 0 {
		return disabled{}
	}
	return &LRUCache{
		cache:   cache.New(ttl, ttl*2),
		maxSize: maxSize,
		stats:   CacheStats{Enabled: true},
	}
}

func (c *LRUCache) Get(key string) (*datajud.SearchResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()

	if data, found := c.cache.Get(key); found {
		if resp, ok := data.(*datajud.SearchResponse); ok {
			c.stats.Hits++
			return resp, true
		}
	}

	c.stats.Misses++
	return nil, false
}

func (c *LRUCache) Set(key string, value *datajud.SearchResponse) error {
	if value == nil {
		return fmt.Errorf("cache: refusing to store nil response for %s", key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache.Get(key); !exists && c.cache.ItemCount() >= c.maxSize {
		c.removeOldest()
	}

	c.cache.Set(key, value, cache.DefaultExpiration)
	return nil
}

func (c *LRUCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Size = c.cache.ItemCount()
	return c.stats
}

func (c *LRUCache) Enabled() bool { return true }

// removeOldest evicts the entry closest to expiry, which is the one stored
// first since every entry shares the same TTL.
func (c *LRUCache) removeOldest() {
	items := c.cache.Items()
	if len(items) == 0 {
		return
	}

	var oldestKey string
	var oldestExpiration int64

	for key, item := range items {
		if oldestKey == "" || item.Expiration < oldestExpiration {
			oldestKey = key
			oldestExpiration = item.Expiration
		}
	}

	if oldestKey != "" {
		c.cache.Delete(oldestKey)
	}
}

type disabled struct{}

func (disabled) Get(string) (*datajud.SearchResponse, bool) { return nil, false }
func (disabled) Set(string, *datajud.SearchResponse) error { return nil }
func (disabled) Stats() CacheStats { return CacheStats{} }
func (disabled) Enabled() bool { return false }

// GenerateCacheKey builds the key for a process in a tribunal index.
func GenerateCacheKey(tribunal, number string) string {
	return fmt.Sprintf("processo:%s:%s", tribunal, number)
}
