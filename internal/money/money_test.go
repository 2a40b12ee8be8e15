package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{30, "₹30.00"},
		{45.99, "₹45.99"},
		{12450, "₹12,450.00"},
		{1299, "₹1,299.00"},
		{2.675, "₹2.68"},
		{1234567.891, "₹1,234,567.89"},
		{-89.5, "-₹89.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format("₹", tt.in), "%v", tt.in)
	}
}

func TestWhole(t *testing.T) {
	assert.Equal(t, "₹30", Whole("₹", 30))
	assert.Equal(t, "₹1,300", Whole("₹", 1299.5))
	assert.Equal(t, "$0", Whole("$", 0.2))
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "137.97", Fixed(3*45.99, 2))
	assert.Equal(t, "10", Fixed(9.5, 0))
}
