package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FlatProduct(t *testing.T) {
	p := Product{ID: 7, BasePrice: price("19.90"), StockQty: 0, ReservedQty: 0}

	r := Resolve(NewSnapshot(p, nil), ResolveOptions{WithPerCombination: true})

	assert.False(t, r.Availability.Purchasable)
	assert.True(t, r.PriceRange.Min.Equal(price("19.90")))
	assert.True(t, r.PriceRange.Max.Equal(price("19.90")))
	assert.Empty(t, r.Options)
}

func TestResolve_SizeColorMatrix(t *testing.T) {
	combos := sizeColorCombos()
	combos[1].PriceOverride = price("109.90")
	p := Product{ID: 1, BasePrice: price("99.90"), HasVariations: true}

	r := Resolve(NewSnapshot(p, combos), ResolveOptions{})

	assert.True(t, r.Availability.Purchasable)
	assert.Nil(t, r.Availability.PerCombination)
	require.Len(t, r.Options, 2)
	assert.Equal(t, "Size", r.Options[0].AxisName)
	assert.Equal(t, "Color", r.Options[1].AxisName)
	assert.True(t, r.PriceRange.Min.Equal(price("99.90")))
	assert.True(t, r.PriceRange.Max.Equal(price("109.90")))
}

func TestCombination_EffectivePrice(t *testing.T) {
	c := combo(1, 1, 0)
	assert.True(t, c.EffectivePrice(price("10")).Equal(price("10")))

	c.PriceOverride = price("12.50")
	assert.True(t, c.HasPriceOverride())
	assert.True(t, c.EffectivePrice(price("10")).Equal(price("12.50")))
}

func TestProduct_InCategory(t *testing.T) {
	cat := int64(4)
	p := Product{CategoryID: &cat}

	assert.True(t, p.InCategory(4))
	assert.False(t, p.InCategory(5))
	assert.False(t, Product{}.InCategory(4))
}
