package server

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// stateEntry is a cached TV query result with its fetch time
type stateEntry struct {
	data      interface{}
	timestamp time.Time
}

// StateCache keeps recent TV state queries so a polling web UI does not
// hammer the TV. Entries expire by age; the LRU bound is a backstop.
type StateCache struct {
	cache *lru.Cache[string, stateEntry]
	ttl   time.Duration
}

// NewStateCache creates a cache holding up to maxSize entries for ttl each
func NewStateCache(maxSize int, ttl time.Duration) *StateCache {
	if maxSize <= 0 {
		maxSize = 16
	}
	if ttl <= 0 {
		ttl = 2 * time.Second
	}

	cache, _ := lru.New[string, stateEntry](maxSize)
	return &StateCache{
		cache: cache,
		ttl:   ttl,
	}
}

// Get returns the cached value for key if it has not expired
func (sc *StateCache) Get(key string) (interface{}, bool) {
	entry, ok := sc.cache.Get(key)
	if !ok {
		return nil, false
	}
	if time.Since(entry.timestamp) > sc.ttl {
		sc.cache.Remove(key)
		return nil, false
	}
	return entry.data, true
}

// Put stores a value for key
func (sc *StateCache) Put(key string, data interface{}) {
	sc.cache.Add(key, stateEntry{
		data:      data,
		timestamp: time.Now(),
	})
}

// Invalidate drops a key, used after commands that change TV state
func (sc *StateCache) Invalidate(key string) {
	sc.cache.Remove(key)
}
