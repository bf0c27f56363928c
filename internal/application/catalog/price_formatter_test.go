package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPriceFormatter_PortugueseBrazil(t *testing.T) {
	f, err := NewPriceFormatter("pt-BR", "BRL", "R$")
	require.NoError(t, err)

	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{"two decimals padded", "19.9", "19,90"},
		{"zero", "0", "0,00"},
		{"groups thousands", "12345.6", "12.345,60"},
		{"groups millions", "1234567.891", "1.234.567,89"},
		{"rounds half up", "0.005", "0,01"},
		{"negative", "-12345.5", "-12.345,50"},
		{"rounds to zero without sign", "-0.001", "0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Format(dec(tt.amount)))
		})
	}

	assert.Equal(t, "R$ 19,90", f.FormatWithSymbol(dec("19.90")))
	assert.Equal(t, "BRL", f.Currency())
	assert.Equal(t, "pt-BR", f.Locale())
}

func TestPriceFormatter_EnglishUS(t *testing.T) {
	f, err := NewPriceFormatter("en-US", "USD", "$")
	require.NoError(t, err)

	assert.Equal(t, "12,345.60", f.Format(dec("12345.6")))
	assert.Equal(t, "$ 0.99", f.FormatWithSymbol(dec("0.99")))
}

func TestPriceFormatter_FormatRange(t *testing.T) {
	f := MustPriceFormatter("pt-BR", "BRL", "R$")

	t.Run("single price", func(t *testing.T) {
		r := catalog.PriceRange{Min: dec("19.90"), Max: dec("19.90")}
		assert.Equal(t, "R$ 19,90", f.FormatRange(r))
	})

	t.Run("range", func(t *testing.T) {
		r := catalog.PriceRange{Min: dec("49.90"), Max: dec("59.9")}
		assert.Equal(t, "R$ 49,90 - R$ 59,90", f.FormatRange(r))
	})
}

func TestNewPriceFormatter_Errors(t *testing.T) {
	_, err := NewPriceFormatter("not a locale!", "BRL", "R$")
	assert.Error(t, err)

	_, err = NewPriceFormatter("pt-BR", "ZZZ", "R$")
	assert.Error(t, err)

	assert.Panics(t, func() { MustPriceFormatter("pt-BR", "??", "") })
}

func TestNewPriceFormatter_SymbolDefaultsToCode(t *testing.T) {
	f, err := NewPriceFormatter("pt-BR", "brl", "")
	require.NoError(t, err)
	assert.Equal(t, "BRL 5,00", f.FormatWithSymbol(dec("5")))
}
