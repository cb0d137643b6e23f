package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewValidator_NotBlank(t *testing.T) {
	var v interface{ Struct(interface{}) error }
	require.NotPanics(t, func() { v = newValidator() })

	require.Error(t, v.Struct(RegisterProductInput{Name: " \t", Category: "c", Price: "1", Quantity: "1"}))
	require.NoError(t, v.Struct(RegisterProductInput{Name: "n", Category: "c", Price: "1", Quantity: "1"}))
}

func TestParsePrice_KeepsSignOutOfBounds(t *testing.T) {
	price, negative := parsePrice(" -1e40 ")
	require.True(t, negative)
	require.True(t, price.IsZero())

	price, negative = parsePrice("1e20000000")
	require.False(t, negative)
	require.True(t, price.IsZero())

	price, negative = parsePrice("abc")
	require.False(t, negative)
	require.True(t, price.IsZero())

	price, negative = parsePrice("12.50")
	require.False(t, negative)
	require.Equal(t, "12.5", price.String())
}

func TestParseQuantity(t *testing.T) {
	require.Equal(t, 5, parseQuantity(" 5 "))
	require.Equal(t, 2147483647, parseQuantity("2147483647"))
	require.Equal(t, 0, parseQuantity("2147483648"))
	require.Equal(t, 0, parseQuantity("9223372036854775807"))
	require.Equal(t, 0, parseQuantity("five"))
	require.Equal(t, -3, parseQuantity("-3"))
}
