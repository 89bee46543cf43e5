package domain

import (
	"testing"

	"github.com/google/uuid"
)

func snapshotWithTiers(name string, base int64) ProductSnapshot {
	return ProductSnapshot{
		ID:             uuid.New(),
		Name:           name,
		BasePriceCents: base,
		Tiers:          standardTiers(),
	}
}

// checkAggregates verifies the cart totals equal the sums over its lines.
func checkAggregates(t *testing.T, c *Cart) {
	t.Helper()

	var totalCents, savings int64
	var quantity int
	for _, line := range c.Lines() {
		if line.SubtotalCents != int64(line.Quantity)*line.EffectivePriceCents {
			t.Fatalf("line subtotal drifted: %d != %d * %d", line.SubtotalCents, line.Quantity, line.EffectivePriceCents)
		}
		totalCents += line.SubtotalCents
		quantity += line.Quantity
		savings += int64(line.Quantity) * (line.Product.BasePriceCents - line.EffectivePriceCents)
	}

	if c.TotalCents() != totalCents {
		t.Fatalf("total %d != sum of subtotals %d", c.TotalCents(), totalCents)
	}
	if c.TotalQuantity() != quantity {
		t.Fatalf("total quantity %d != sum of quantities %d", c.TotalQuantity(), quantity)
	}
	if c.TotalSavingsCents() != savings {
		t.Fatalf("total savings %d != sum of line savings %d", c.TotalSavingsCents(), savings)
	}
}

func TestCart_AddAccumulates(t *testing.T) {
	cart := NewCart()
	lavender := snapshotWithTiers("Lavender", 10000)

	if err := cart.Add(lavender, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := cart.Add(lavender, 2); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	line, ok := cart.Line(lavender.ID)
	if !ok {
		t.Fatal("expected a line for the product")
	}
	if line.Quantity != 5 {
		t.Fatalf("expected accumulated quantity 5, got %d", line.Quantity)
	}
	// Quantity 5 crosses into the 10% band against the new total.
	if line.EffectivePriceCents != 9000 {
		t.Fatalf("expected repriced unit 9000, got %d", line.EffectivePriceCents)
	}
	if line.SubtotalCents != 45000 {
		t.Fatalf("expected subtotal 45000, got %d", line.SubtotalCents)
	}
	if len(cart.Lines()) != 1 {
		t.Fatalf("expected a single line, got %d", len(cart.Lines()))
	}
	checkAggregates(t, cart)
}

func TestCart_UpdateReplacesQuantity(t *testing.T) {
	cart := NewCart()
	fern := snapshotWithTiers("Boston Fern", 10000)

	if err := cart.Add(fern, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := cart.UpdateQuantity(fern.ID, 2); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	line, _ := cart.Line(fern.ID)
	if line.Quantity != 2 {
		t.Fatalf("expected quantity replaced with 2, got %d", line.Quantity)
	}
	if line.EffectivePriceCents != 10000 {
		t.Fatalf("expected base price at quantity 2, got %d", line.EffectivePriceCents)
	}
	checkAggregates(t, cart)
}

func TestCart_TierBoundaryTotals(t *testing.T) {
	// Tiers [1-4: 0%, 5-9: 10%, 10+: 20%] at base 100.00.
	cases := []struct {
		quantity     int
		wantUnit     int64
		wantSubtotal int64
		wantSavings  int64
	}{
		{4, 10000, 40000, 0},
		{5, 9000, 45000, 5000},
		{10, 8000, 80000, 20000},
	}

	for _, tc := range cases {
		cart := NewCart()
		plant := snapshotWithTiers("Monstera", 10000)
		if err := cart.Add(plant, tc.quantity); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		line, _ := cart.Line(plant.ID)
		if line.EffectivePriceCents != tc.wantUnit {
			t.Fatalf("quantity %d: expected unit %d, got %d", tc.quantity, tc.wantUnit, line.EffectivePriceCents)
		}
		if cart.TotalCents() != tc.wantSubtotal {
			t.Fatalf("quantity %d: expected total %d, got %d", tc.quantity, tc.wantSubtotal, cart.TotalCents())
		}
		if cart.TotalSavingsCents() != tc.wantSavings {
			t.Fatalf("quantity %d: expected savings %d, got %d", tc.quantity, tc.wantSavings, cart.TotalSavingsCents())
		}
		checkAggregates(t, cart)
	}
}

func TestCart_AddRejectsNonPositiveQuantity(t *testing.T) {
	cart := NewCart()
	rose := snapshotWithTiers("Climbing Rose", 2500)

	if err := cart.Add(rose, 0); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	if err := cart.Add(rose, -4); err == nil {
		t.Fatal("expected error for negative quantity")
	}
	if !cart.IsEmpty() {
		t.Fatal("rejected command must not change state")
	}
	if cart.TotalCents() != 0 || cart.TotalQuantity() != 0 {
		t.Fatal("aggregates must stay zero after rejected commands")
	}
}

func TestCart_RemoveIsIdempotent(t *testing.T) {
	cart := NewCart()
	ivy := snapshotWithTiers("English Ivy", 1200)
	if err := cart.Add(ivy, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cart.Remove(uuid.New()) // absent product: no-op
	if cart.TotalQuantity() != 2 {
		t.Fatalf("removing an absent product changed state")
	}

	cart.Remove(ivy.ID)
	cart.Remove(ivy.ID)
	if !cart.IsEmpty() {
		t.Fatal("expected empty cart")
	}
	checkAggregates(t, cart)
}

func TestCart_UpdateToZeroRemovesLine(t *testing.T) {
	cart := NewCart()
	basil := snapshotWithTiers("Sweet Basil", 450)
	if err := cart.Add(basil, 6); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := cart.UpdateQuantity(basil.ID, 0); err != nil {
		t.Fatalf("update to zero must not error: %v", err)
	}
	if cart.Contains(basil.ID) {
		t.Fatal("expected line removed")
	}
	checkAggregates(t, cart)
}

func TestCart_UpdateMissingLineFails(t *testing.T) {
	cart := NewCart()
	if err := cart.UpdateQuantity(uuid.New(), 3); err == nil {
		t.Fatal("expected error updating a product not in the cart")
	}
	if !cart.IsEmpty() {
		t.Fatal("failed command must not change state")
	}
}

func TestCart_InsertionOrderPreserved(t *testing.T) {
	cart := NewCart()
	first := snapshotWithTiers("Snake Plant", 3000)
	second := snapshotWithTiers("Peace Lily", 2800)

	if err := cart.Add(first, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := cart.Add(second, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := cart.UpdateQuantity(first.ID, 7); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	lines := cart.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Product.ID != first.ID || lines[1].Product.ID != second.ID {
		t.Fatal("updating a quantity must not reposition lines")
	}
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(snapshotWithTiers("Aloe", 900), 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := cart.Add(snapshotWithTiers("Jade", 1100), 8); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cart.Clear()
	if !cart.IsEmpty() {
		t.Fatal("expected no lines after clear")
	}
	if cart.TotalCents() != 0 || cart.TotalQuantity() != 0 || cart.TotalSavingsCents() != 0 {
		t.Fatal("expected zero aggregates after clear")
	}
}

func TestCart_LoadRecomputesAdvisoryFields(t *testing.T) {
	plant := snapshotWithTiers("Monstera", 10000)

	cart := NewCart()
	cart.Load([]Line{
		{
			Product:             plant,
			Quantity:            5,
			EffectivePriceCents: 1,      // stale, must be ignored
			SubtotalCents:       999999, // stale, must be ignored
		},
	})

	if cart.TotalCents() != 45000 {
		t.Fatalf("expected recomputed total 45000, got %d", cart.TotalCents())
	}
	line, _ := cart.Line(plant.ID)
	if line.EffectivePriceCents != 9000 || line.SubtotalCents != 45000 {
		t.Fatalf("expected repriced line (9000/45000), got %d/%d", line.EffectivePriceCents, line.SubtotalCents)
	}
	if line.Tier == nil || line.Tier.DiscountBps != 1000 {
		t.Fatal("expected the 10%% band attributed after load")
	}
	checkAggregates(t, cart)
}

func TestCart_LoadDropsInvalidAndMergesDuplicates(t *testing.T) {
	plant := snapshotWithTiers("Monstera", 10000)

	cart := NewCart()
	cart.Load([]Line{
		{Product: plant, Quantity: 3},
		{Quantity: 4},                  // no product: dropped
		{Product: plant, Quantity: 0},  // non-positive: dropped
		{Product: plant, Quantity: 2},  // duplicate: merged
	})

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", lines[0].Quantity)
	}
	checkAggregates(t, cart)
}

func TestCart_LoadReplacesExistingState(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(snapshotWithTiers("Aloe", 900), 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	replacement := snapshotWithTiers("Ficus", 5200)
	cart.Load([]Line{{Product: replacement, Quantity: 1}})

	lines := cart.Lines()
	if len(lines) != 1 || lines[0].Product.ID != replacement.ID {
		t.Fatal("expected load to replace prior contents")
	}
	checkAggregates(t, cart)
}

func TestCart_ProductWithoutTiers(t *testing.T) {
	cart := NewCart()
	plain := ProductSnapshot{ID: uuid.New(), Name: "Terracotta Pot", BasePriceCents: 799}

	if err := cart.Add(plain, 12); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	line, _ := cart.Line(plain.ID)
	if line.Tier != nil {
		t.Fatal("expected no tier attribution without a tier table")
	}
	if line.EffectivePriceCents != 799 {
		t.Fatalf("expected base price, got %d", line.EffectivePriceCents)
	}
	if cart.TotalSavingsCents() != 0 {
		t.Fatalf("expected zero savings, got %d", cart.TotalSavingsCents())
	}
}
