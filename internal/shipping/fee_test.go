package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRates_Calculate(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		dest     Destination
		expected int64
	}{
		{
			name:     "Hanoi below threshold",
			amount:   500_000,
			dest:     Destination{Country: "Vietnam", City: "Hanoi"},
			expected: 30_000,
		},
		{
			name:     "Hanoi with diacritics and mixed case",
			amount:   500_000,
			dest:     Destination{Country: "Việt Nam", City: "Hà Nội"},
			expected: 30_000,
		},
		{
			name:     "Hanoi spelled with space",
			amount:   10_000,
			dest:     Destination{Country: "VIET NAM", City: "ha noi"},
			expected: 30_000,
		},
		{
			name:     "Other Vietnamese city",
			amount:   500_000,
			dest:     Destination{Country: "vietnam", City: "Da Nang"},
			expected: 40_000,
		},
		{
			name:     "Vietnam with empty city",
			amount:   500_000,
			dest:     Destination{Country: "Vietnam", City: ""},
			expected: 40_000,
		},
		{
			name:     "International",
			amount:   500_000,
			dest:     Destination{Country: "France", City: "Paris"},
			expected: 100_000,
		},
		{
			name:     "Hanoi city outside Vietnam is international",
			amount:   500_000,
			dest:     Destination{Country: "Laos", City: "Hanoi"},
			expected: 100_000,
		},
		{
			name:     "Exactly at threshold is not free",
			amount:   1_000_000,
			dest:     Destination{Country: "Vietnam", City: "Hanoi"},
			expected: 30_000,
		},
		{
			name:     "Free shipping dominates international",
			amount:   2_000_000,
			dest:     Destination{Country: "France", City: "Paris"},
			expected: 0,
		},
		{
			name:     "Free shipping just above threshold",
			amount:   1_000_001,
			dest:     Destination{Country: "Vietnam", City: "Ho Chi Minh"},
			expected: 0,
		},
		{
			name:     "No fuzzy matching",
			amount:   500_000,
			dest:     Destination{Country: "Vietnamm", City: "Hanoi"},
			expected: 100_000,
		},
		{
			name:     "Surrounding whitespace is ignored",
			amount:   500_000,
			dest:     Destination{Country: " Vietnam ", City: " Hanoi"},
			expected: 30_000,
		},
	}

	rates := DefaultRates()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rates.Calculate(tt.amount, tt.dest))
		})
	}
}

func TestCalculate_IsDeterministic(t *testing.T) {
	dest := Destination{Country: "Vietnam", City: "Hanoi"}

	first := Calculate(500_000, dest)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Calculate(500_000, dest))
	}

	assert.Equal(t, int64(530_000), 500_000+first)
}

func TestCalculate_FreeAboveThresholdForAnyDestination(t *testing.T) {
	destinations := []Destination{
		{Country: "Vietnam", City: "Hanoi"},
		{Country: "Vietnam", City: "Hue"},
		{Country: "Japan", City: "Tokyo"},
		{},
	}

	for _, dest := range destinations {
		assert.Zero(t, Calculate(1_000_001, dest))
	}
}

func TestRates_CustomTable(t *testing.T) {
	rates := DefaultRates()
	rates.Hanoi = 15_000

	assert.Equal(t, int64(15_000), rates.Calculate(100, Destination{Country: "Vietnam", City: "Hanoi"}))
	assert.Equal(t, int64(30_000), Calculate(100, Destination{Country: "Vietnam", City: "Hanoi"}))
}
