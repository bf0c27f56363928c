package catalog

import "github.com/shopspring/decimal"

// PriceRange is the lowest and highest price a product can be bought at
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// IsSinglePrice reports whether every variant costs the same
func (r PriceRange) IsSinglePrice() bool {
	return r.Min.Equal(r.Max)
}

// CalculatePriceRange returns the min and max over the base price and every
// positive combination price override. Zero or negative overrides inherit the
// base price and add no candidate of their own.
func CalculatePriceRange(basePrice decimal.Decimal, combinations []Combination) PriceRange {
	r := PriceRange{Min: basePrice, Max: basePrice}
	for _, combo := range combinations {
		if !combo.HasPriceOverride() {
			continue
		}
		if combo.PriceOverride.LessThan(r.Min) {
			r.Min = combo.PriceOverride
		}
		if combo.PriceOverride.GreaterThan(r.Max) {
			r.Max = combo.PriceOverride
		}
	}
	return r
}
