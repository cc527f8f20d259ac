package icon

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCapacity is the default maximum number of cached assets.
	DefaultCapacity = 100

	// DefaultEvictBatch is how many of the oldest entries are removed
	// per eviction round. Batching amortizes eviction cost instead of
	// evicting one-for-one on every insert.
	DefaultEvictBatch = 20
)

// Decoder resolves a source descriptor into an asset. Implementations
// live outside the dispatch path; the cache calls them from LoadAsync
// only.
type Decoder interface {
	// Decode returns the asset for a source, or an error if the
	// source cannot be resolved.
	Decode(ctx context.Context, src Source) (*Asset, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, src Source) (*Asset, error)

// Decode calls f.
func (f DecoderFunc) Decode(ctx context.Context, src Source) (*Asset, error) {
	return f(ctx, src)
}

// Cache is a bounded key-to-asset store with LRU eviction.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	capacity int
	batch    int
	decoder  Decoder

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64

	group singleflight.Group
}

// cacheEntry is owned exclusively by the cache and never exposed for
// external mutation.
type cacheEntry struct {
	asset      *Asset
	lastAccess time.Time
}

// New creates a cache with the given capacity and the default
// eviction batch size. Capacity values below one fall back to the
// default. The decoder may be nil if LoadAsync is never used.
func New(capacity int, decoder Decoder) *Cache {
	return NewWithBatch(capacity, DefaultEvictBatch, decoder)
}

// NewWithBatch creates a cache with explicit capacity and eviction
// batch size. The batch is clamped to the capacity.
func NewWithBatch(capacity, batch int, decoder Decoder) *Cache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if batch < 1 {
		batch = 1
	}
	if batch > capacity {
		batch = capacity
	}
	return &Cache{
		entries:  make(map[string]*cacheEntry),
		capacity: capacity,
		batch:    batch,
		decoder:  decoder,
	}
}

// Get returns the cached asset for a key, refreshing its recency.
// A hit records a hit, an absent key records a miss; the two never
// overlap, so hits+misses equals the total number of Get calls.
func (c *Cache) Get(key string) (*Asset, bool) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok {
		entry.lastAccess = time.Now()
		asset := entry.asset
		c.mu.Unlock()
		c.hits.Add(1)
		return asset, true
	}
	c.mu.Unlock()
	c.misses.Add(1)
	return nil, false
}

// Put stores an asset, evicting a batch of the least recently used
// entries first if the cache is at capacity.
func (c *Cache) Put(key string, asset *Asset) {
	if asset == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictLocked()
	}

	c.entries[key] = &cacheEntry{
		asset:      asset,
		lastAccess: time.Now(),
	}
}

// LoadAsync resolves an asset for key, checking the cache first. On a
// hit the callback runs synchronously with the cached asset. On a miss
// the decode happens off the calling goroutine; the result populates
// the cache before onReady is invoked. onReady receives nil when the
// load fails. Failures are never cached, so a later attempt retries.
//
// Concurrent loads for the same key are collapsed into one decode.
func (c *Cache) LoadAsync(ctx context.Context, key string, src Source, onReady func(*Asset)) {
	if asset, ok := c.Get(key); ok {
		onReady(asset)
		return
	}

	go func() {
		v, err, _ := c.group.Do(key, func() (any, error) {
			if c.decoder == nil {
				return nil, context.Canceled
			}
			asset, err := c.decoder.Decode(ctx, src)
			if err != nil {
				return nil, err
			}
			c.Put(key, asset)
			return asset, nil
		})
		if err != nil {
			onReady(nil)
			return
		}
		onReady(v.(*Asset))
	}()
}

// Clear removes all entries. Counters are preserved.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats holds cache statistics.
type Stats struct {
	Size      int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	size := len(c.entries)
	c.mu.Unlock()

	return Stats{
		Size:      size,
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// evictLocked removes the batch of oldest-lastAccess entries.
// Ties among equal timestamps break by map iteration order, which is
// acceptable: recency granularity is coarse and sub-second collisions
// are harmless. Caller must hold the lock.
func (c *Cache) evictLocked() {
	type keyTime struct {
		key  string
		time time.Time
	}

	ordered := make([]keyTime, 0, len(c.entries))
	for key, entry := range c.entries {
		ordered = append(ordered, keyTime{key, entry.lastAccess})
	}

	// Insertion sort by access time; N is bounded by capacity.
	for i := 1; i < len(ordered); i++ {
		j := i
		for j > 0 && ordered[j].time.Before(ordered[j-1].time) {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
			j--
		}
	}

	toRemove := c.batch
	if toRemove > len(ordered) {
		toRemove = len(ordered)
	}
	for i := 0; i < toRemove; i++ {
		delete(c.entries, ordered[i].key)
	}
	c.evictions.Add(uint64(toRemove))
}
