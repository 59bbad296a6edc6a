package services

import (
	"container/list"
	"sync"

	"github.com/meridian-labs/docsage/internal/logger"
)

// DefaultCacheCapacity bounds how many loaded document states are kept
// in memory across queries.
const DefaultCacheCapacity = 16

// stateCache is a mutex-guarded LRU of loaded document states, keyed
// by the index artifact path. It avoids re-reading a document's three
// artifact files on every query. Least recently used entries are
// evicted first once the capacity bound is exceeded.
type stateCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

type cacheEntry struct {
	key   string
	state *documentState
}

func newStateCache(capacity int) *stateCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &stateCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// get returns the cached state for key, marking it most recently used.
func (c *stateCache) get(key string) (*documentState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).state, true
}

// put inserts or refreshes an entry, evicting the least recently used
// entry when over capacity.
func (c *stateCache) put(key string, state *documentState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).state = state
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, state: state})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		evicted := oldest.Value.(*cacheEntry)
		delete(c.entries, evicted.key)
		logger.Debug("State cache evicted %s", evicted.key)
	}
}

// len returns the number of cached entries.
func (c *stateCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
