package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxVariationAxes is the number of variation axes a combination can carry
const MaxVariationAxes = 3

// FallbackAxisName is used when an axis has no display name
const FallbackAxisName = "Outros"

// VariationSlot is one (axis, option) pair of a combination.
// A zero AxisID means the slot is unused.
type VariationSlot struct {
	AxisID     int64
	AxisName   string
	OptionID   int64
	OptionName string
}

// IsPopulated reports whether the slot names an axis and a non-blank option
func (s VariationSlot) IsPopulated() bool {
	return s.AxisID != 0 && strings.TrimSpace(s.OptionName) != ""
}

// DisplayAxisName returns the axis name, or FallbackAxisName when blank
func (s VariationSlot) DisplayAxisName() string {
	if name := strings.TrimSpace(s.AxisName); name != "" {
		return name
	}
	return FallbackAxisName
}

// DisplayOptionName returns the option name without surrounding whitespace
func (s VariationSlot) DisplayOptionName() string {
	return strings.TrimSpace(s.OptionName)
}

// Combination is one sellable tuple of variation options with its own stock
// and an optional price override.
type Combination struct {
	ID            int64
	ProductID     int64
	Slots         []VariationSlot
	Quantity      int
	ReservedQty   int
	MinStock      int
	PriceOverride decimal.Decimal // zero or negative means "use base price"
	Image         string
	Active        bool
}

// Available returns max(0, Quantity - ReservedQty)
func (c Combination) Available() int {
	return AvailableQuantity(c.Quantity, c.ReservedQty)
}

// HasPriceOverride reports whether the combination carries its own price
func (c Combination) HasPriceOverride() bool {
	return c.PriceOverride.IsPositive()
}

// EffectivePrice returns the override when present, otherwise the base price
func (c Combination) EffectivePrice(base decimal.Decimal) decimal.Decimal {
	if c.HasPriceOverride() {
		return c.PriceOverride
	}
	return base
}

// IsPurchasable reports whether the combination is active with stock left
func (c Combination) IsPurchasable() bool {
	return c.Active && c.Available() > 0
}

// AvailableQuantity returns quantity minus reserved, clamped at zero.
// Negative inputs are treated as zero on-hand stock.
func AvailableQuantity(quantity, reserved int) int {
	if quantity <= 0 {
		return 0
	}
	if reserved < 0 {
		reserved = 0
	}
	if reserved >= quantity {
		return 0
	}
	return quantity - reserved
}
