package cache

import (
	"fmt"
	"time"
)

// Constants for cache configuration
const (
	snapshotKeyPrefix      = "catalog:snapshot"
	defaultSnapshotTTL     = 30 * time.Second
	defaultCleanupInterval = 30 * time.Second
)

// snapshotKey generates the cache key for a product snapshot
func snapshotKey(storeID, productID int64) string {
	return fmt.Sprintf("%s:%d:%d", snapshotKeyPrefix, storeID, productID)
}
