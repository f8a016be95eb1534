package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/totem-project/totem/internal/store"
)

const (
	cacheSweepEvery   = 10 * time.Second // janitor wake-up
	ttlBase           = 40 * time.Second // cold entry expires after this
	ttlHitBonus       = 4 * time.Second  // each extra read adds this much TTL
	maxTrackedEntries = 100_000          // hard memory cap
)

// trackedState caches the latest committed state of one object so a commit
// does not have to re-read its predecessor from the store.
type trackedState struct {
	obj      map[string]any
	rev      store.RevisionID
	lastRead int64 // unix-nsec; atomic
	hitCount uint32
}

type stateCache struct {
	mu     sync.RWMutex
	data   map[string]*trackedState
	stopCh chan struct{}
}

// newStateCache returns a cache with a janitor that evicts cold entries.
func newStateCache() *stateCache {
	c := &stateCache{
		data:   make(map[string]*trackedState, 1024),
		stopCh: make(chan struct{}),
	}
	go c.janitor()
	return c
}

// close stops the janitor and clears the cache.
func (c *stateCache) close() {
	close(c.stopCh)
	c.mu.Lock()
	c.data = nil
	c.mu.Unlock()
}

// janitor evicts cold entries. Cheap O(n) scan every 10 s.
func (c *stateCache) janitor() {
	ticker := time.NewTicker(cacheSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictCold()
		case <-c.stopCh:
			return
		}
	}
}

func (c *stateCache) evictCold() {
	now := time.Now()

	c.mu.Lock()
	for key, entry := range c.data {
		age := now.Sub(time.Unix(0, atomic.LoadInt64(&entry.lastRead)))
		ttl := ttlBase + time.Duration(atomic.LoadUint32(&entry.hitCount))*ttlHitBonus
		if age > ttl {
			delete(c.data, key)
		}
	}
	c.mu.Unlock()
}

// get returns nil on a miss.
func (c *stateCache) get(objectID string) *trackedState {
	c.mu.RLock()
	entry := c.data[objectID]
	c.mu.RUnlock()

	if entry == nil {
		return nil
	}
	atomic.AddUint32(&entry.hitCount, 1)
	atomic.StoreInt64(&entry.lastRead, time.Now().UnixNano())
	return entry
}

// set overwrites (or creates) the entry.
func (c *stateCache) set(objectID string, state *trackedState) {
	c.mu.Lock()
	if c.data != nil && len(c.data) < maxTrackedEntries {
		c.data[objectID] = state
	}
	c.mu.Unlock()
	atomic.StoreInt64(&state.lastRead, time.Now().UnixNano())
}
