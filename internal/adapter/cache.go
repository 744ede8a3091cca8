package adapter

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

// cacheSweepSize triggers a sweep of expired entries on Set.
const cacheSweepSize = 256

// SlotCache holds raw slots in memory with a TTL. It is never persisted.
type SlotCache struct {
	mu       sync.Mutex
	slots    map[string][]teetime.RawSlot
	cachedAt map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
}

// NewSlotCache creates a cache whose entries expire after ttl.
func NewSlotCache(ttl time.Duration) *SlotCache {
	return &SlotCache{
		slots:    make(map[string][]teetime.RawSlot),
		cachedAt: make(map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a copy of the cached slots, or false if missing or expired.
func (c *SlotCache) Get(key string) ([]teetime.RawSlot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	slots, ok := c.slots[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(c.cachedAt[key]) > c.ttl {
		delete(c.slots, key)
		delete(c.cachedAt, key)
		return nil, false
	}
	return append([]teetime.RawSlot(nil), slots...), true
}

// Set stores a copy of slots under key.
func (c *SlotCache) Set(key string, slots []teetime.RawSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.slots) >= cacheSweepSize {
		c.cleanExpiredLocked()
	}
	c.slots[key] = append([]teetime.RawSlot{}, slots...)
	c.cachedAt[key] = c.now()
}

// CleanExpired removes expired entries and returns how many were dropped.
func (c *SlotCache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleanExpiredLocked()
}

func (c *SlotCache) cleanExpiredLocked() int {
	removed := 0
	now := c.now()
	for key, at := range c.cachedAt {
		if now.Sub(at) > c.ttl {
			delete(c.slots, key)
			delete(c.cachedAt, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of cached entries.
func (c *SlotCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots)
}

// WithCache serves repeated fetches of the same course and date range from memory.
// ttl <= 0 returns a unchanged. Failed fetches are not cached.
func WithCache(a Adapter, ttl time.Duration) Adapter {
	if ttl <= 0 {
		return a
	}
	return &cachedAdapter{Adapter: a, cache: NewSlotCache(ttl)}
}

type cachedAdapter struct {
	Adapter
	cache *SlotCache
}

func (c *cachedAdapter) FetchRaw(ctx context.Context, course teetime.Course, dates teetime.DateRange) ([]teetime.RawSlot, error) {
	key := cacheKey(c.Name(), course, dates)
	if slots, ok := c.cache.Get(key); ok {
		return slots, nil
	}

	slots, err := c.Adapter.FetchRaw(ctx, course, dates)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, slots)
	return slots, nil
}

func cacheKey(adapter string, course teetime.Course, dates teetime.DateRange) string {
	return strings.Join([]string{adapter, nameKey(course.Name), course.URL, dates.Key()}, "|")
}
