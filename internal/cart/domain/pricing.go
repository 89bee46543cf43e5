package domain

import "math"

// PriceTier is one quantity band of a product's tier table.
// MaxQuantity of 0 means the band is unbounded above.
type PriceTier struct {
	MinQuantity int `json:"minQuantity"`
	MaxQuantity int `json:"maxQuantity,omitempty"`
	DiscountBps int `json:"discountBps"`
}

// Contains reports whether the band covers the given quantity.
func (t PriceTier) Contains(quantity int) bool {
	if quantity < t.MinQuantity {
		return false
	}
	return t.MaxQuantity == 0 || quantity <= t.MaxQuantity
}

// Unbounded reports whether the band has no upper limit.
func (t PriceTier) Unbounded() bool {
	return t.MaxQuantity == 0
}

// ResolveTier scans the tier table in declared order and returns the first
// band containing quantity, along with the discounted unit price in cents.
// With no tiers, or no matching band, it returns (nil, basePriceCents).
// Overlapping bands are not validated; the earliest match wins, which keeps
// resolution deterministic even for malformed tables.
func ResolveTier(tiers []PriceTier, basePriceCents int64, quantity int) (*PriceTier, int64) {
	for _, tier := range tiers {
		if tier.Contains(quantity) {
			applied := tier
			return &applied, effectiveUnitPrice(basePriceCents, tier.DiscountBps)
		}
	}
	return nil, basePriceCents
}

// effectiveUnitPrice applies a basis-point discount to a unit price.
// Rounding happens exactly once per resolution so that re-resolving the
// same inputs always yields the same cents value.
func effectiveUnitPrice(basePriceCents int64, discountBps int) int64 {
	if discountBps <= 0 {
		return basePriceCents
	}
	return roundCents(float64(basePriceCents) * (1.0 - float64(discountBps)/10000.0))
}

// roundCents rounds a float to the nearest cent (integer)
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
