package server

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// CountCache remembers counts for recently seen query lines. Queries repeat
// heavily in interactive sessions and the descent cost grows with pattern
// length, so a small bounded cache pays for itself quickly.
type CountCache struct {
	trie        *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	maxEntries  int
	mu          sync.RWMutex
}

// NewCountCache creates a cache holding at most maxEntries queries.
func NewCountCache(maxEntries int) *CountCache {
	return &CountCache{
		trie:       patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached count for a query line, if present.
func (cc *CountCache) Get(query string) (int, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	item := cc.trie.Get(patricia.Prefix(query))
	if item == nil {
		return 0, false
	}
	count, ok := item.(int)
	if !ok {
		log.Errorf("Unknown item type in count cache: %T for query %s", item, query)
		return 0, false
	}
	cc.markAccessed(query)
	return count, true
}

// Put stores the count for a query line, evicting the least recently used
// entry when full.
func (cc *CountCache) Put(query string, count int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if len(cc.accessTime) >= cc.maxEntries {
		if _, cached := cc.accessTime[query]; !cached {
			cc.evictLRU()
		}
	}
	cc.trie.Set(patricia.Prefix(query), count)
	cc.markAccessed(query)
}

// Len returns the number of cached queries.
func (cc *CountCache) Len() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.accessTime)
}

// Stats returns basic cache statistics.
func (cc *CountCache) Stats() map[string]int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return map[string]int{
		"cachedQueries": len(cc.accessTime),
		"maxEntries":    cc.maxEntries,
		"accesses":      int(cc.accessCount),
	}
}

func (cc *CountCache) markAccessed(query string) {
	cc.accessCount++
	cc.accessTime[query] = cc.accessCount
}

func (cc *CountCache) evictLRU() {
	var oldest string
	var oldestTime int64 = -1
	for query, at := range cc.accessTime {
		if oldestTime == -1 || at < oldestTime {
			oldest = query
			oldestTime = at
		}
	}
	if oldestTime == -1 {
		return
	}
	cc.trie.Delete(patricia.Prefix(oldest))
	delete(cc.accessTime, oldest)
	log.Debugf("Evicted query from count cache: %s", oldest)
}
