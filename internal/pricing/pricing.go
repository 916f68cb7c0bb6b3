// Package pricing computes the per-customer display price for catalog products.
//
// Three tiers share one base catalog: resellers buy at the base (wholesale)
// price, corporate and government customers pay a tenant-configurable markup on
// top of it, rounded up to the nearest 100 currency units so customers never see
// ragged prices. The markups live in the settings row and the price is always
// recomputed at read time.
package pricing

import "github.com/yavrumyan/B2BPortal/internal/models"

// CalculatePrice returns the price shown to a customer of the given type.
//
// The whole computation is integer arithmetic: basePrice*(100+markup) followed
// by a ceiling division keeps 450000 at 10% at exactly 495000, where a float
// multiply could drift below the rounding boundary.
//
// Markup percentages are taken as-is; range validation belongs to the settings
// endpoint. An unrecognized customer type gets markup 0 (and still passes
// through the round-up, matching the historical behavior).
func CalculatePrice(basePrice int, customerType models.CustomerType, corporateMarkup, governmentMarkup int) int {
	if customerType == models.TypeReseller {
		return basePrice
	}

	markup := 0
	switch customerType {
	case models.TypeCorporate:
		markup = corporateMarkup
	case models.TypeGovernment:
		markup = governmentMarkup
	}

	return roundUpTo100(basePrice * (100 + markup))
}

// roundUpTo100 takes basePrice*(100+markup) and returns ceil(n/10000)*100,
// i.e. the marked-up price rounded up to the next multiple of 100.
func roundUpTo100(n int) int {
	q := n / 10000
	if n%10000 > 0 {
		q++
	}
	return q * 100
}
