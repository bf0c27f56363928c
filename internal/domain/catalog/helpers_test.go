package catalog

import "github.com/shopspring/decimal"

func slot(axisID int64, axisName string, optionID int64, optionName string) VariationSlot {
	return VariationSlot{AxisID: axisID, AxisName: axisName, OptionID: optionID, OptionName: optionName}
}

func combo(id int64, qty, reserved int, slots ...VariationSlot) Combination {
	return Combination{
		ID:          id,
		ProductID:   1,
		Slots:       slots,
		Quantity:    qty,
		ReservedQty: reserved,
		Active:      true,
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sizeColorCombos is the Size{S,M} x Color{Red,Blue} matrix
func sizeColorCombos() []Combination {
	s, m := slot(1, "Size", 10, "S"), slot(1, "Size", 11, "M")
	red, blue := slot(2, "Color", 20, "Red"), slot(2, "Color", 21, "Blue")
	return []Combination{
		combo(1, 0, 0, s, red),
		combo(2, 2, 0, s, blue),
		combo(3, 5, 0, m, red),
		combo(4, 0, 0, m, blue),
	}
}
