package application

import (
	"sync"
	"time"

	"github.com/example/club-scheduler/internal/scheduler"
)

// analyticsCache stores recently computed dashboard snapshots to avoid
// recomputing aggregates for identical queries while the event collection
// remains unchanged.
type analyticsCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]analyticsCacheEntry
}

type analyticsCacheEntry struct {
	snapshot  scheduler.Analytics
	expiresAt time.Time
}

func newAnalyticsCache(ttl time.Duration, maxEntries int, now func() time.Time) *analyticsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 64
	}
	if now == nil {
		now = time.Now
	}
	return &analyticsCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]analyticsCacheEntry),
	}
}

func (c *analyticsCache) Get(key string) (scheduler.Analytics, bool) {
	if c == nil {
		return scheduler.Analytics{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return scheduler.Analytics{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return scheduler.Analytics{}, false
	}
	return entry.snapshot, true
}

func (c *analyticsCache) Put(key string, snapshot scheduler.Analytics) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		// Evict the entry expiring soonest; the map is small.
		var oldestKey string
		var oldest time.Time
		for k, entry := range c.entries {
			if oldestKey == "" || entry.expiresAt.Before(oldest) {
				oldestKey = k
				oldest = entry.expiresAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = analyticsCacheEntry{
		snapshot:  snapshot,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Invalidate drops all cached snapshots. Called after mutations.
func (c *analyticsCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]analyticsCacheEntry)
	c.mu.Unlock()
}
