package domain

import "testing"

func standardTiers() []PriceTier {
	return []PriceTier{
		{MinQuantity: 1, MaxQuantity: 4, DiscountBps: 0},
		{MinQuantity: 5, MaxQuantity: 9, DiscountBps: 1000},
		{MinQuantity: 10, MaxQuantity: 0, DiscountBps: 2000},
	}
}

func TestResolveTier_BandBoundaries(t *testing.T) {
	tiers := standardTiers()
	base := int64(10000)

	cases := []struct {
		name      string
		quantity  int
		wantPrice int64
		wantBps   int
	}{
		{"bottom of first band", 1, 10000, 0},
		{"top of first band", 4, 10000, 0},
		{"bottom of second band", 5, 9000, 1000},
		{"top of second band", 9, 9000, 1000},
		{"bottom of unbounded band", 10, 8000, 2000},
		{"deep in unbounded band", 250, 8000, 2000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tier, price := ResolveTier(tiers, base, tc.quantity)
			if tier == nil {
				t.Fatalf("expected a tier for quantity %d", tc.quantity)
			}
			if tier.DiscountBps != tc.wantBps {
				t.Fatalf("expected discount %d bps, got %d", tc.wantBps, tier.DiscountBps)
			}
			if price != tc.wantPrice {
				t.Fatalf("expected price %d, got %d", tc.wantPrice, price)
			}
		})
	}
}

func TestResolveTier_NoTiersFallsBackToBasePrice(t *testing.T) {
	tier, price := ResolveTier(nil, 4500, 3)
	if tier != nil {
		t.Fatalf("expected no tier, got %+v", tier)
	}
	if price != 4500 {
		t.Fatalf("expected base price 4500, got %d", price)
	}
}

func TestResolveTier_NoMatchingBandFallsBackToBasePrice(t *testing.T) {
	// Gapped table: nothing covers quantities 1 and 2.
	tiers := []PriceTier{
		{MinQuantity: 3, MaxQuantity: 9, DiscountBps: 500},
		{MinQuantity: 10, MaxQuantity: 0, DiscountBps: 1500},
	}

	tier, price := ResolveTier(tiers, 2000, 2)
	if tier != nil {
		t.Fatalf("expected no tier for quantity below all bands, got %+v", tier)
	}
	if price != 2000 {
		t.Fatalf("expected base price 2000, got %d", price)
	}
}

func TestResolveTier_OverlappingBandsFirstMatchWins(t *testing.T) {
	tiers := []PriceTier{
		{MinQuantity: 1, MaxQuantity: 10, DiscountBps: 300},
		{MinQuantity: 5, MaxQuantity: 10, DiscountBps: 900},
	}

	tier, price := ResolveTier(tiers, 10000, 7)
	if tier == nil {
		t.Fatal("expected a tier")
	}
	if tier.DiscountBps != 300 {
		t.Fatalf("expected earliest-declared band to win, got %d bps", tier.DiscountBps)
	}
	if price != 9700 {
		t.Fatalf("expected price 9700, got %d", price)
	}
}

func TestResolveTier_Idempotent(t *testing.T) {
	tiers := standardTiers()
	for quantity := 1; quantity <= 30; quantity++ {
		firstTier, firstPrice := ResolveTier(tiers, 3333, quantity)
		secondTier, secondPrice := ResolveTier(tiers, 3333, quantity)
		if firstPrice != secondPrice {
			t.Fatalf("quantity %d: price changed across resolutions: %d then %d", quantity, firstPrice, secondPrice)
		}
		if (firstTier == nil) != (secondTier == nil) {
			t.Fatalf("quantity %d: tier presence changed across resolutions", quantity)
		}
		if firstTier != nil && *firstTier != *secondTier {
			t.Fatalf("quantity %d: tier changed across resolutions", quantity)
		}
	}
}

func TestResolveTier_RoundsHalfUpOnce(t *testing.T) {
	// 9999 * (1 - 0.0015) = 9984.00015 -> 9984
	_, price := ResolveTier([]PriceTier{{MinQuantity: 1, DiscountBps: 15}}, 9999, 1)
	if price != 9984 {
		t.Fatalf("expected 9984, got %d", price)
	}

	// 333 * (1 - 0.25) = 249.75 -> 250
	_, price = ResolveTier([]PriceTier{{MinQuantity: 1, DiscountBps: 2500}}, 333, 1)
	if price != 250 {
		t.Fatalf("expected half-up rounding to 250, got %d", price)
	}
}

func TestResolveTier_FullDiscountYieldsZero(t *testing.T) {
	_, price := ResolveTier([]PriceTier{{MinQuantity: 1, DiscountBps: 10000}}, 7500, 1)
	if price != 0 {
		t.Fatalf("expected zero price at 100%% discount, got %d", price)
	}
}
