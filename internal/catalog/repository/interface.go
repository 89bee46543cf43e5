package repository

import (
	"context"

	"github.com/google/uuid"
)

// Product is a plant-nursery catalog product.
type Product struct {
	ID             uuid.UUID
	Name           string
	SKU            string
	Description    *string
	BasePriceCents int64
	InStock        bool
	InSeason       bool
	CreatedAt      string
	UpdatedAt      string
}

// PriceTier is one quantity band of a product's volume discount table.
// MaxQuantity nil means the band is unbounded above.
type PriceTier struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	MinQuantity int
	MaxQuantity *int
	DiscountBps int
}

type CreateProductParams struct {
	Name           string
	SKU            string
	Description    *string
	BasePriceCents int64
	InStock        bool
	InSeason       bool
}

type UpdateProductParams struct {
	ID             uuid.UUID
	Name           *string
	SKU            *string
	Description    *string
	BasePriceCents *int64
	InStock        *bool
	InSeason       *bool
}

type ListProductsParams struct {
	Search      string
	InStockOnly bool
	Offset      int
	Limit       int
	SortBy      string
	SortOrder   string
}

type TierParams struct {
	MinQuantity int
	MaxQuantity *int
	DiscountBps int
}

// Repository defines the catalog persistence operations.
type Repository interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProductByID(ctx context.Context, id uuid.UUID) (Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error)

	// GetProductTiers returns the product's tier table ordered by
	// ascending MinQuantity.
	GetProductTiers(ctx context.Context, productID uuid.UUID) ([]PriceTier, error)
	// ReplaceProductTiers swaps the product's whole tier table in one
	// transaction.
	ReplaceProductTiers(ctx context.Context, productID uuid.UUID, tiers []TierParams) ([]PriceTier, error)
}
