package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProductFilter narrows storefront product listings
type ProductFilter struct {
	shared.Filter
	CategoryID *int64
}

// ProductRepository reads store-scoped products. Only active products are
// ever returned.
type ProductRepository interface {
	// FindByID finds an active product of the store by its ID
	FindByID(ctx context.Context, storeID, productID int64) (*Product, error)

	// FindPurchasable lists the store's purchasable products matching the filter
	FindPurchasable(ctx context.Context, storeID int64, filter ProductFilter) ([]Product, error)

	// CountPurchasable counts the store's purchasable products matching the filter
	CountPurchasable(ctx context.Context, storeID int64, filter ProductFilter) (int64, error)

	// FindRelated lists purchasable products of the same category, excluding productID
	FindRelated(ctx context.Context, storeID, productID, categoryID int64, limit int) ([]Product, error)
}

// CombinationRepository reads the variation combinations of products.
// Rows come back ordered by combination id with axis and option names resolved
// and active flags already mapped to bool.
type CombinationRepository interface {
	// FindByProductID returns every combination of one product
	FindByProductID(ctx context.Context, productID int64) ([]Combination, error)

	// FindByProductIDs returns combinations grouped by product id.
	// Products without combinations are absent from the map.
	FindByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]Combination, error)
}
