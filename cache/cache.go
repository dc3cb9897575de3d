// Package cache keeps recently finished batch artifacts in memory so result
// lookups don't hit the file store for hot sessions.
package cache

import (
	"sync"
	"time"

	"github.com/proplens/proplens/storage"
)

// entry holds a cached artifact with its insertion timestamp.
type entry struct {
	artifact  *storage.Artifact
	createdAt time.Time
}

// Cache is a bounded in-memory cache of batch artifacts keyed by session id.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
}

// New creates a Cache with the given capacity. A background goroutine runs
// every 5 minutes to evict entries older than 1 hour.
func New(maxEntries int) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
	}
	go c.cleanupLoop()
	return c
}

// Get returns the cached artifact for a session, if present.
func (c *Cache) Get(sessionID string) (*storage.Artifact, bool) {
	c.mu.RLock()
	e, ok := c.store[sessionID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return e.artifact, true
}

// Set stores an artifact. At capacity a random entry is evicted to make
// room (map iteration order is random in Go).
func (c *Cache) Set(sessionID string, a *storage.Artifact) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[sessionID] = &entry{artifact: a, createdAt: time.Now()}
}

// cleanupLoop evicts entries older than 1 hour every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-1 * time.Hour)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
