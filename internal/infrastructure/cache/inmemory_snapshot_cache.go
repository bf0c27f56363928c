package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// InMemorySnapshotCache implements catalog.SnapshotCache in process memory.
// Entries are not shared between instances.
type InMemorySnapshotCache struct {
	entries         sync.Map // map[string]*cacheEntry
	ttl             time.Duration
	cleanupInterval time.Duration
	logger          *zap.Logger
	stopCh          chan struct{}
	stopped         int32

	hits   int64
	misses int64
}

// cacheEntry wraps a cached snapshot with its expiration time
type cacheEntry struct {
	snapshot  catalog.Snapshot
	expiresAt time.Time
}

func (e *cacheEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemorySnapshotCacheOption is a functional option for configuring the cache
type InMemorySnapshotCacheOption func(*InMemorySnapshotCache)

// WithInMemoryTTL sets the default TTL
func WithInMemoryTTL(ttl time.Duration) InMemorySnapshotCacheOption {
	return func(c *InMemorySnapshotCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCleanupInterval sets how often expired entries are swept
func WithCleanupInterval(interval time.Duration) InMemorySnapshotCacheOption {
	return func(c *InMemorySnapshotCache) {
		if interval > 0 {
			c.cleanupInterval = interval
		}
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemorySnapshotCacheOption {
	return func(c *InMemorySnapshotCache) {
		c.logger = logger
	}
}

// NewInMemorySnapshotCache creates the cache and starts its cleanup loop.
// Call Stop to end the loop.
func NewInMemorySnapshotCache(opts ...InMemorySnapshotCacheOption) *InMemorySnapshotCache {
	c := &InMemorySnapshotCache{
		ttl:             defaultSnapshotTTL,
		cleanupInterval: defaultCleanupInterval,
		logger:          zap.NewNop(),
		stopCh:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupExpired()
	return c
}

// Get retrieves a snapshot from cache
func (c *InMemorySnapshotCache) Get(_ context.Context, storeID, productID int64) (*catalog.Snapshot, error) {
	key := snapshotKey(storeID, productID)

	if value, ok := c.entries.Load(key); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired(time.Now()) {
			atomic.AddInt64(&c.hits, 1)
			// copy so callers cannot mutate the cached combinations
			s := catalog.NewSnapshot(entry.snapshot.Product, entry.snapshot.Combinations)
			return &s, nil
		}
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, nil
}

// Set stores a snapshot in cache
func (c *InMemorySnapshotCache) Set(_ context.Context, snapshot catalog.Snapshot, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}
	c.entries.Store(snapshotKey(snapshot.Product.StoreID, snapshot.Product.ID), &cacheEntry{
		snapshot:  catalog.NewSnapshot(snapshot.Product, snapshot.Combinations),
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Delete removes a snapshot from cache
func (c *InMemorySnapshotCache) Delete(_ context.Context, storeID, productID int64) error {
	c.entries.Delete(snapshotKey(storeID, productID))
	return nil
}

// Stats returns hit and miss counters
func (c *InMemorySnapshotCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Len counts live and not yet swept entries
func (c *InMemorySnapshotCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Stop ends the cleanup loop. Safe to call more than once.
func (c *InMemorySnapshotCache) Stop() {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
}

// Close implements io.Closer
func (c *InMemorySnapshotCache) Close() error {
	c.Stop()
	return nil
}

func (c *InMemorySnapshotCache) cleanupExpired() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case now := <-ticker.C:
			removed := c.sweep(now)
			if removed > 0 {
				c.logger.Debug("Swept expired snapshots", zap.Int("removed", removed))
			}
		}
	}
}

func (c *InMemorySnapshotCache) sweep(now time.Time) int {
	removed := 0
	c.entries.Range(func(key, value any) bool {
		if value.(*cacheEntry).isExpired(now) {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// Ensure InMemorySnapshotCache implements catalog.SnapshotCache
var _ catalog.SnapshotCache = (*InMemorySnapshotCache)(nil)
