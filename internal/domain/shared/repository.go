package shared

import "math"

// Default and maximum page sizes for store-facing listings
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "name",
		OrderDir: "asc",
	}
}

// Normalize clamps page to [1, MaxPage] and page size to [1, maxPageSize].
// A zero page size becomes the default.
func (f Filter) Normalize(maxPageSize int) Filter {
	if maxPageSize <= 0 {
		maxPageSize = MaxPageSize
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize == 0 {
		f.PageSize = DefaultPageSize
	}
	switch {
	case f.PageSize < 1:
		f.PageSize = 1
	case f.PageSize > maxPageSize:
		f.PageSize = maxPageSize
	}
	if last := MaxPage(f.PageSize); f.Page > last {
		f.Page = last
	}
	return f
}

// MaxPage is the last page whose offset still fits in an int32
func MaxPage(pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	return math.MaxInt32/pageSize + 1
}

// Offset returns the row offset for the filter's page
func (f Filter) Offset() int {
	if f.Page < 1 || f.PageSize < 1 {
		return 0
	}
	page := min(f.Page, MaxPage(f.PageSize))
	return (page - 1) * f.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// HasNext reports whether a page exists after the current one
func (p Paginated[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether a page exists before the current one
func (p Paginated[T]) HasPrev() bool {
	return p.Page > 1
}
