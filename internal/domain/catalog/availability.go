package catalog

// Availability is the purchasability verdict for one product snapshot
type Availability struct {
	Purchasable bool
	// PerCombination maps combination id to available units. Nil unless
	// requested. Inactive combinations are reported as 0.
	PerCombination map[int64]int
}

// ResolveAvailability decides whether the snapshot's product can be bought now.
//
// When the product has combinations they are authoritative: it is purchasable
// iff at least one active combination has available stock, and the product's
// own stock fields are never consulted. Without combinations the product's
// fallback stock decides.
func ResolveAvailability(s Snapshot, withPerCombination bool) Availability {
	var a Availability
	if withPerCombination {
		a.PerCombination = make(map[int64]int, len(s.Combinations))
	}

	if s.IsFlat() {
		a.Purchasable = s.Product.Available() > 0
		return a
	}

	for _, combo := range s.Combinations {
		available := 0
		if combo.Active {
			available = combo.Available()
		}
		if available > 0 {
			a.Purchasable = true
		}
		if a.PerCombination != nil {
			a.PerCombination[combo.ID] = available
		}
	}
	return a
}

// AvailableUnits sums available stock over active combinations, or returns the
// fallback stock for a flat product.
func AvailableUnits(s Snapshot) int {
	if s.IsFlat() {
		return s.Product.Available()
	}
	total := 0
	for _, combo := range s.Combinations {
		if combo.Active {
			total += combo.Available()
		}
	}
	return total
}
