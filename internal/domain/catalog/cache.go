package catalog

import (
	"context"
	"time"
)

// SnapshotCache stores product snapshots between requests.
//
// Keys are scoped by store and product: catalog:snapshot:{store_id}:{product_id}.
// Cached snapshots can lag behind stock changes for up to the TTL, so callers
// that need live availability must read the repositories directly.
type SnapshotCache interface {
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, storeID, productID int64) (*Snapshot, error)

	// Set stores the snapshot. A zero ttl uses the implementation default.
	Set(ctx context.Context, snapshot Snapshot, ttl time.Duration) error

	// Delete evicts one product's snapshot.
	Delete(ctx context.Context, storeID, productID int64) error
}
