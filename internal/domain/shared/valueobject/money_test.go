package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.RequireFromString("100.50"), BRL)
		require.NoError(t, err)
		assert.Equal(t, BRL, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.RequireFromString("100.5")))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("19.90", BRL)
		require.NoError(t, err)
		assert.Equal(t, "19.90", m.StringFixed(2))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("dezenove", BRL)
		assert.Error(t, err)
	})
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Currency
		wantErr bool
	}{
		{"empty defaults to BRL", "", BRL, false},
		{"lower case is normalized", "usd", USD, false},
		{"padded code", " eur ", EUR, false},
		{"too long", "REAL", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_Compare(t *testing.T) {
	a := NewMoneyBRL(decimal.RequireFromString("10.00"))
	b := NewMoneyBRL(decimal.RequireFromString("10"))
	c := NewMoneyBRL(decimal.RequireFromString("12.5"))

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))

	less, err := a.LessThan(c)
	require.NoError(t, err)
	assert.True(t, less)

	_, err = a.LessThan(Zero(USD))
	assert.Error(t, err)
}

func TestMoney_Round(t *testing.T) {
	m := NewMoneyBRL(decimal.RequireFromString("19.895"))
	assert.Equal(t, "19.90", m.Round(2).StringFixed(2))
	assert.True(t, Zero(BRL).IsZero())
	assert.True(t, m.IsPositive())
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyBRL(decimal.RequireFromString("1234.5"))
	assert.Equal(t, "1234.50 BRL", m.String())

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1234.50","currency":"BRL"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equals(m))

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"1","currency":""}`), &back))
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"x","currency":"BRL"}`), &back))
}
