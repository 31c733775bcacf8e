package utils

import (
	"os"
	"sync"
	"time"
)

// Stamp identifies one version of a file on disk
type Stamp struct {
	ModTime time.Time
	Size    int64
}

// StampOf stats path and returns its stamp
func StampOf(path string) (Stamp, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Stamp{}, err
	}
	return Stamp{ModTime: stat.ModTime(), Size: stat.Size()}, nil
}

// Equal reports whether both stamps describe the same file version
func (s Stamp) Equal(other Stamp) bool {
	return s.ModTime.Equal(other.ModTime) && s.Size == other.Size
}

// CacheItem represents a cached item with the stamp it was computed from
type CacheItem[T any] struct {
	Value T
	Stamp Stamp
}

// Cache provides a generic, thread-safe cache with file-based invalidation
type Cache[K comparable, V any] struct {
	items map[K]*CacheItem[V]
	mutex sync.RWMutex
}

// NewCache creates a new generic cache
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]*CacheItem[V]),
	}
}

// Get retrieves an item regardless of its stamp
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if item, exists := c.items[key]; exists {
		return item.Value, true
	}

	var zero V
	return zero, false
}

// GetFresh retrieves an item only if it was stored with stamp. Stale items are evicted.
func (c *Cache[K, V]) GetFresh(key K, stamp Stamp) (V, bool) {
	c.mutex.RLock()
	item, exists := c.items[key]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}
	if item.Stamp.Equal(stamp) {
		return item.Value, true
	}

	c.mutex.Lock()
	if current, ok := c.items[key]; ok && current == item {
		delete(c.items, key)
	}
	c.mutex.Unlock()
	return zero, false
}

// GetWithFileValidation retrieves an item cached for filePath.
// If the file has changed or vanished since caching, the item is evicted.
func (c *Cache[K, V]) GetWithFileValidation(key K, filePath string) (V, bool) {
	stamp, err := StampOf(filePath)
	if err != nil {
		c.Delete(key)
		var zero V
		return zero, false
	}
	return c.GetFresh(key, stamp)
}

// Set stores an item without a stamp
func (c *Cache[K, V]) Set(key K, value V) {
	c.Put(key, value, Stamp{})
}

// Put stores an item together with the stamp it was computed from
func (c *Cache[K, V]) Put(key K, value V, stamp Stamp) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = &CacheItem[V]{Value: value, Stamp: stamp}
}

// SetWithFileInfo stores an item stamped with the current state of filePath
func (c *Cache[K, V]) SetWithFileInfo(key K, value V, filePath string) error {
	stamp, err := StampOf(filePath)
	if err != nil {
		return err
	}
	c.Put(key, value, stamp)
	return nil
}

// Delete removes an item from the cache
func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
}

// Retain drops every item whose key does not satisfy keep and returns how many were dropped
func (c *Cache[K, V]) Retain(keep func(K) bool) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	dropped := 0
	for key := range c.items {
		if !keep(key) {
			delete(c.items, key)
			dropped++
		}
	}
	return dropped
}

// Clear removes all items from the cache
func (c *Cache[K, V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[K]*CacheItem[V])
}

// Size returns the number of items in the cache
func (c *Cache[K, V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}
