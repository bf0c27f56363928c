package dto

// ProductListRequest holds listing query parameters. Page and limit are
// clamped by the service rather than rejected.
type ProductListRequest struct {
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
	CategoryID *int64 `form:"category_id" binding:"omitempty,min=1"`
	Search     string `form:"search" binding:"max=100"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=id name price created_at"`
	SortOrder  string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// ProductURI is the :id path parameter
type ProductURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// CategoryURI is the :category_id path parameter
type CategoryURI struct {
	CategoryID int64 `uri:"category_id" binding:"required,min=1"`
}

// ProductDetailRequest holds detail query parameters
type ProductDetailRequest struct {
	// PerCombination defaults to true when absent
	PerCombination *bool `form:"per_combination"`
}

// WantsPerCombination reports whether per-combination availability is requested
func (r ProductDetailRequest) WantsPerCombination() bool {
	return r.PerCombination == nil || *r.PerCombination
}

// RelatedRequest holds related-products query parameters
type RelatedRequest struct {
	Limit int `form:"limit"`
}
