package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns defaultDir when the input is empty or unrecognised.
func ValidateSortOrder(orderDir, defaultDir string) string {
	switch strings.ToUpper(strings.TrimSpace(orderDir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	}
	if strings.EqualFold(defaultDir, "DESC") {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField maps a public sort key onto a whitelisted column.
// Returns the column of defaultField if the key is empty or unknown.
func ValidateSortField(sortField string, allowedFields map[string]string, defaultField string) string {
	key := strings.ToLower(strings.TrimSpace(sortField))
	if column, ok := allowedFields[key]; ok {
		return column
	}
	return allowedFields[defaultField]
}

// ProductSortFields maps listing sort keys to product columns
var ProductSortFields = map[string]string{
	"id":         "products.id",
	"name":       "products.name",
	"price":      "products.base_price",
	"created_at": "products.created_at",
}
