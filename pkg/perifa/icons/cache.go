package icons

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

const defaultMaxCacheSize = 32

// Cache keeps the most recently used PNG rasters. It is safe for concurrent
// use.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]byte
	order   []string // least recently used first
	maxSize int

	hits   atomic.Int64
	misses atomic.Int64
}

func NewCache() *Cache {
	return NewCacheWithSize(defaultMaxCacheSize)
}

func NewCacheWithSize(maxSize int) *Cache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Cache{
		entries: make(map[string][]byte),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Key identifies a raster by kind, size and normalized color.
func Key(kind Kind, size int, hex string) string {
	if hex == "" {
		hex = kind.DefaultColor()
	}
	return fmt.Sprintf("%s/%d/%s", kind, size, strings.ToLower(strings.TrimPrefix(hex, "#")))
}

func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, exists := c.entries[key]
	if !exists {
		return nil, false
	}
	c.moveToEnd(key)
	return data, true
}

func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = data
		c.moveToEnd(key)
		return
	}

	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = data
	c.order = append(c.order, key)
}

// PNG returns the cached raster for the arguments, rasterizing it on a miss.
func (c *Cache) PNG(kind Kind, size int, hex string) ([]byte, error) {
	key := Key(kind, size, hex)
	if data, ok := c.Get(key); ok {
		c.hits.Inc()
		return data, nil
	}
	c.misses.Inc()

	data, err := RasterizePNG(kind, size, hex)
	if err != nil {
		return nil, err
	}
	c.Set(key, data)
	return data, nil
}

func (c *Cache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *Cache) evictOldest() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

// Len returns the number of cached rasters.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counts of PNG.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	c.order = c.order[:0]
}
