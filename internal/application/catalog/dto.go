package catalog

import (
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductListQuery holds listing parameters after HTTP binding
type ProductListQuery struct {
	Page       int
	Limit      int
	CategoryID *int64
	Search     string
	SortBy     string
	SortOrder  string
}

// PriceRangeResponse is the min/max price across a product's combinations
type PriceRangeResponse struct {
	Min          valueobject.Money `json:"min"`
	Max          valueobject.Money `json:"max"`
	MinFormatted string            `json:"min_formatted"`
	MaxFormatted string            `json:"max_formatted"`
	Formatted    string            `json:"formatted"`
	SinglePrice  bool              `json:"single_price"`
}

// ProductSummaryResponse is a product as shown in listings
type ProductSummaryResponse struct {
	ID             int64              `json:"id"`
	StoreSeq       int64              `json:"store_seq"`
	Reference      string             `json:"reference"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	CategoryID     *int64             `json:"category_id"`
	CategoryName   string             `json:"category_name"`
	Price          valueobject.Money  `json:"price"`
	PriceFormatted string             `json:"price_formatted"`
	PriceRange     PriceRangeResponse `json:"price_range"`
	HasVariations  bool               `json:"has_variations"`
	FreeShipping   bool               `json:"free_shipping"`
	Purchasable    bool               `json:"purchasable"`
	AvailableQty   int                `json:"available_quantity"`
	CreatedAt      time.Time          `json:"created_at"`
}

// VariationSlotResponse is one axis/option pair of a variation
type VariationSlotResponse struct {
	AxisID     int64  `json:"axis_id"`
	AxisName   string `json:"axis_name"`
	OptionID   int64  `json:"option_id"`
	OptionName string `json:"option_name"`
}

// VariationResponse is one combination row of a product
type VariationResponse struct {
	ID             int64                   `json:"id"`
	Slots          []VariationSlotResponse `json:"slots"`
	Price          valueobject.Money       `json:"price"`
	PriceFormatted string                  `json:"price_formatted"`
	Available      int                     `json:"available_quantity"`
	MinStock       int                     `json:"min_stock"`
	Image          string                  `json:"image,omitempty"`
	Active         bool                    `json:"active"`
}

// ProductDetailResponse is the full product page payload
type ProductDetailResponse struct {
	ProductSummaryResponse
	TrackStock bool                  `json:"track_stock"`
	Variations []VariationResponse   `json:"variations"`
	Options    []catalog.OptionGroup `json:"options"`
	// PerCombination maps combination id to available units
	PerCombination map[int64]int `json:"per_combination_available,omitempty"`
}

// AvailabilityResponse is the live purchasability of a product
type AvailabilityResponse struct {
	ProductID      int64         `json:"product_id"`
	Purchasable    bool          `json:"purchasable"`
	AvailableQty   int           `json:"available_quantity"`
	PerCombination map[int64]int `json:"per_combination_available"`
}

// ProductListResult is one page of products
type ProductListResult struct {
	Products   []ProductSummaryResponse `json:"products"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalPages int                      `json:"total_pages"`
	CategoryID *int64                   `json:"category_id,omitempty"`
}

// HasNext reports whether a further page exists
func (r ProductListResult) HasNext() bool {
	return r.Page < r.TotalPages
}

// HasPrev reports whether an earlier page exists
func (r ProductListResult) HasPrev() bool {
	return r.Page > 1
}
