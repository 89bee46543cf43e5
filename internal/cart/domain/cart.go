// Package domain holds the cart engine and tier pricing rules. It is pure
// in-memory state with no transport or storage dependencies; the service
// layer owns hydration and persistence around it.
package domain

import (
	"plantstore_backend/platform/apperr"

	"github.com/google/uuid"
)

// ProductSnapshot is the immutable product view a cart line prices against.
// The tier table is attached at snapshot time so the engine never reaches
// back into the catalog.
type ProductSnapshot struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	BasePriceCents int64       `json:"basePriceCents"`
	Tiers          []PriceTier `json:"tiers,omitempty"`
}

// Line is one product's aggregated quantity and pricing within a cart.
// Tier is nil when no tier band matched the quantity.
type Line struct {
	Product             ProductSnapshot `json:"product"`
	Quantity            int             `json:"quantity"`
	Tier                *PriceTier      `json:"tier,omitempty"`
	EffectivePriceCents int64           `json:"effectivePriceCents"`
	SubtotalCents       int64           `json:"subtotalCents"`
}

// SavingsCents returns the discount attributed to the line.
func (l Line) SavingsCents() int64 {
	return int64(l.Quantity) * (l.Product.BasePriceCents - l.EffectivePriceCents)
}

// Cart is the authoritative set of cart lines for one member session.
// Lines are kept in insertion order with at most one line per product;
// aggregates are recomputed from the lines after every command, never
// mutated independently. A Cart is owned by a single caller and performs
// no locking of its own.
type Cart struct {
	lines             []Line
	totalCents        int64
	totalQuantity     int
	totalSavingsCents int64
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add increases the quantity for product by quantity, creating the line if
// absent. The line is repriced against its new total quantity.
func (c *Cart) Add(product ProductSnapshot, quantity int) error {
	if quantity < 1 {
		return apperr.Validation("quantity must be a positive integer")
	}
	if product.ID == uuid.Nil {
		return apperr.Validation("product is required")
	}
	if product.BasePriceCents < 0 {
		return apperr.Validation("product price cannot be negative")
	}

	if idx := c.index(product.ID); idx >= 0 {
		c.lines[idx].Quantity += quantity
		c.reprice(idx)
	} else {
		c.lines = append(c.lines, Line{Product: product, Quantity: quantity})
		c.reprice(len(c.lines) - 1)
	}

	c.recompute()
	return nil
}

// Remove deletes the line for productID. Removing an absent product is a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	idx := c.index(productID)
	if idx < 0 {
		return
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	c.recompute()
}

// UpdateQuantity sets the line's quantity to the given value, replacing
// rather than accumulating. A quantity of zero or less removes the line.
// The line keeps its position in the cart.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		c.Remove(productID)
		return nil
	}

	idx := c.index(productID)
	if idx < 0 {
		return apperr.NotFound("product is not in the cart")
	}

	c.lines[idx].Quantity = quantity
	c.reprice(idx)
	c.recompute()
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.recompute()
}

// Load replaces the cart contents with the supplied lines, typically from a
// persisted snapshot. Per-line pricing and any aggregate fields the snapshot
// carried are advisory: every line is repriced from its product snapshot and
// quantity, and the aggregates are re-derived, so a stale or corrupted
// snapshot cannot produce an inconsistent total. Lines without a product or
// a positive quantity are dropped; duplicate products are merged into the
// first occurrence.
func (c *Cart) Load(lines []Line) {
	c.lines = nil
	for _, line := range lines {
		if line.Product.ID == uuid.Nil || line.Quantity < 1 {
			continue
		}
		if idx := c.index(line.Product.ID); idx >= 0 {
			c.lines[idx].Quantity += line.Quantity
			continue
		}
		c.lines = append(c.lines, Line{Product: line.Product, Quantity: line.Quantity})
	}

	for i := range c.lines {
		c.reprice(i)
	}
	c.recompute()
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalCents returns the sum of all line subtotals.
func (c *Cart) TotalCents() int64 {
	return c.totalCents
}

// TotalQuantity returns the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	return c.totalQuantity
}

// TotalSavingsCents returns the total tier discount across all lines.
func (c *Cart) TotalSavingsCents() int64 {
	return c.totalSavingsCents
}

// Contains reports whether the cart holds a line for productID.
func (c *Cart) Contains(productID uuid.UUID) bool {
	return c.index(productID) >= 0
}

// Line returns the line for productID if present.
func (c *Cart) Line(productID uuid.UUID) (Line, bool) {
	idx := c.index(productID)
	if idx < 0 {
		return Line{}, false
	}
	return c.lines[idx], true
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) index(productID uuid.UUID) int {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// reprice re-resolves the tier for line i against its current quantity.
func (c *Cart) reprice(i int) {
	line := &c.lines[i]
	tier, unitPrice := ResolveTier(line.Product.Tiers, line.Product.BasePriceCents, line.Quantity)
	line.Tier = tier
	line.EffectivePriceCents = unitPrice
	line.SubtotalCents = int64(line.Quantity) * unitPrice
}

// recompute re-derives every aggregate from the line set.
func (c *Cart) recompute() {
	var totalCents, totalSavings int64
	var totalQuantity int
	for i := range c.lines {
		totalCents += c.lines[i].SubtotalCents
		totalQuantity += c.lines[i].Quantity
		totalSavings += c.lines[i].SavingsCents()
	}
	c.totalCents = totalCents
	c.totalQuantity = totalQuantity
	c.totalSavingsCents = totalSavings
}
