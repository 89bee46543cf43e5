package transport

import "github.com/google/uuid"

// Commands

type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type UpdateItemRequest struct {
	// Quantity replaces the line quantity; zero removes the line.
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

// Views

type TierResponse struct {
	MinQuantity int  `json:"minQuantity"`
	MaxQuantity *int `json:"maxQuantity,omitempty"`
	DiscountBps int  `json:"discountBps"`
}

type LineResponse struct {
	ProductID           uuid.UUID     `json:"productId"`
	Name                string        `json:"name"`
	Quantity            int           `json:"quantity"`
	BasePriceCents      int64         `json:"basePriceCents"`
	EffectivePriceCents int64         `json:"effectivePriceCents"`
	SubtotalCents       int64         `json:"subtotalCents"`
	SavingsCents        int64         `json:"savingsCents"`
	Tier                *TierResponse `json:"tier,omitempty"`
}

type CartResponse struct {
	Lines             []LineResponse `json:"lines"`
	TotalCents        int64          `json:"totalCents"`
	TotalQuantity     int            `json:"totalQuantity"`
	TotalSavingsCents int64          `json:"totalSavingsCents"`
}
