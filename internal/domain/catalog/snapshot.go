package catalog

// Snapshot is the immutable view of a product and its combinations read once
// per request. Every resolution step works from the same snapshot.
type Snapshot struct {
	Product      Product
	Combinations []Combination
}

// NewSnapshot builds a snapshot. The combination slice is copied so later
// mutation by the caller cannot leak into an in-flight resolution.
func NewSnapshot(product Product, combinations []Combination) Snapshot {
	combos := make([]Combination, len(combinations))
	copy(combos, combinations)
	return Snapshot{Product: product, Combinations: combos}
}

// IsFlat reports whether the product is sold without combinations
func (s Snapshot) IsFlat() bool {
	return len(s.Combinations) == 0
}
