// Package shipping computes shipping fees from an order amount and a
// destination.
package shipping

import "strings"

// Destination is the part of an address that determines the fee.
type Destination struct {
	Country string
	City    string
}

// Rates holds the fee table. All amounts are whole VND.
type Rates struct {
	// FreeThreshold is the order amount above which shipping is free.
	FreeThreshold int64
	Hanoi         int64
	Domestic      int64
	International int64

	CountryAliases []string
	CityAliases    []string
}

// DefaultRates returns the shop's fee table.
func DefaultRates() Rates {
	return Rates{
		FreeThreshold:  1_000_000,
		Hanoi:          30_000,
		Domestic:       40_000,
		International:  100_000,
		CountryAliases: []string{"việt nam", "viet nam", "vietnam"},
		CityAliases:    []string{"hà nội", "ha noi", "hanoi"},
	}
}

// Calculator computes shipping fees.
type Calculator interface {
	Calculate(orderAmount int64, dest Destination) int64
}

// Calculate returns the fee for shipping an order worth orderAmount to dest.
func (r Rates) Calculate(orderAmount int64, dest Destination) int64 {
	if orderAmount > r.FreeThreshold {
		return 0
	}

	if !matches(dest.Country, r.CountryAliases) {
		return r.International
	}

	if matches(dest.City, r.CityAliases) {
		return r.Hanoi
	}

	return r.Domestic
}

// Calculate uses DefaultRates.
func Calculate(orderAmount int64, dest Destination) int64 {
	return DefaultRates().Calculate(orderAmount, dest)
}

func matches(value string, aliases []string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, alias := range aliases {
		if v == alias {
			return true
		}
	}
	return false
}
