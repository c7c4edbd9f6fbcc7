// Package cache memoizes calculation results keyed by request fingerprints.
// The cache is capacity-bounded with oldest-first eviction and is safe for
// concurrent use from every actor group. Bulk invalidation runs whenever
// the configuration store swaps in a new snapshot.
package cache

import (
	"container/list"
	"sync"

	"github.com/chaosforge/damage-api/internal/errors"
)

// DefaultCapacity bounds the cache when no capacity is configured.
const DefaultCapacity = 4096

// Config holds the cache settings.
type Config struct {
	// Capacity is the maximum number of entries. Zero uses DefaultCapacity.
	Capacity int
}

// Validate ensures the settings are usable.
func (c *Config) Validate() error {
	if c.Capacity < 0 {
		return errors.InvalidArgument("Capacity must not be negative")
	}
	return nil
}

type entry struct {
	key   string
	value float64
}

// Cache is a bounded FIFO value cache.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List
}

// New creates a cache.
func New(cfg *Config) (*Cache, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}

	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}, nil
}

// Get returns the cached value for key, if present.
func (c *Cache) Get(key string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	el, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	return el.Value.(*entry).value, true
}

// Put stores a value. Re-putting an existing key updates the value without
// refreshing its eviction position. When full, the oldest entry is evicted.
func (c *Cache) Put(key string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*entry).value = value
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Front()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}

	c.entries[key] = c.order.PushBack(&entry{key: key, value: value})
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}
