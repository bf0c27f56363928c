package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYesNo_Scan(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected YesNo
	}{
		{"S string", "S", true},
		{"lowercase s", "s", true},
		{"padded S", " S ", true},
		{"N string", "N", false},
		{"S bytes", []byte("S"), true},
		{"N bytes", []byte("N"), false},
		{"Y accepted", "Y", true},
		{"nil is false", nil, false},
		{"garbage is false", "X", false},
		{"empty is false", "", false},
		{"bool true", true, true},
		{"integer one", int64(1), true},
		{"integer zero", int64(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := YesNo(!tt.expected)
			require.NoError(t, f.Scan(tt.input))
			assert.Equal(t, tt.expected, f)
		})
	}

	t.Run("unsupported type", func(t *testing.T) {
		var f YesNo
		assert.Error(t, f.Scan(3.14))
	})
}

func TestYesNo_Value(t *testing.T) {
	v, err := YesNo(true).Value()
	require.NoError(t, err)
	assert.Equal(t, "S", v)

	v, err = YesNo(false).Value()
	require.NoError(t, err)
	assert.Equal(t, "N", v)

	assert.Equal(t, "char(1)", YesNo(false).GormDataType())
}
