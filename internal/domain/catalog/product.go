package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the read model of a store product as seen by the storefront.
// Catalog management owns writes; this package only reads snapshots of it.
type Product struct {
	ID            int64
	StoreID       int64
	StoreSeq      int64 // per-store sequential number shown to shoppers
	Reference     string
	Name          string
	Description   string
	CategoryID    *int64
	CategoryName  string
	BasePrice     decimal.Decimal
	StockQty      int
	ReservedQty   int
	MinStock      int
	TrackStock    bool
	HasVariations bool
	FreeShipping  bool
	Active        bool
	CreatedAt     time.Time
}

// Available returns the product's own fallback stock net of reservations.
// Only meaningful for products without combinations.
func (p Product) Available() int {
	return AvailableQuantity(p.StockQty, p.ReservedQty)
}

// InCategory reports whether the product belongs to the given category
func (p Product) InCategory(categoryID int64) bool {
	return p.CategoryID != nil && *p.CategoryID == categoryID
}
