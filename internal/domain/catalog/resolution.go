package catalog

// Resolution bundles the three views computed from one snapshot
type Resolution struct {
	Options      []OptionGroup
	PriceRange   PriceRange
	Availability Availability
}

// ResolveOptions tunes what Resolve computes
type ResolveOptions struct {
	WithPerCombination bool
}

// Resolve runs option synthesis, price range and availability over the same
// snapshot. It performs no I/O and never fails.
func Resolve(s Snapshot, opts ResolveOptions) Resolution {
	return Resolution{
		Options:      SynthesizeOptions(s.Combinations),
		PriceRange:   CalculatePriceRange(s.Product.BasePrice, s.Combinations),
		Availability: ResolveAvailability(s, opts.WithPerCombination),
	}
}
