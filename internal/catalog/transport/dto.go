package transport

import "github.com/google/uuid"

// Products

type CreateProductRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	SKU            string  `json:"sku" validate:"required,min=1,max=100"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	BasePriceCents int64   `json:"basePriceCents" validate:"min=0"`
	InStock        bool    `json:"inStock"`
	InSeason       bool    `json:"inSeason"`
}

type UpdateProductRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	SKU            *string `json:"sku,omitempty" validate:"omitempty,min=1,max=100"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	BasePriceCents *int64  `json:"basePriceCents,omitempty" validate:"omitempty,min=0"`
	InStock        *bool   `json:"inStock,omitempty"`
	InSeason       *bool   `json:"inSeason,omitempty"`
}

type ListProductsRequest struct {
	Search      string `form:"search" validate:"max=100"`
	InStockOnly bool   `form:"inStockOnly"`
	Page        int    `form:"page" validate:"omitempty,min=1"`
	PageSize    int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy      string `form:"sortBy" validate:"omitempty,oneof=name sku basePriceCents createdAt updatedAt"`
	SortOrder   string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type ProductResponse struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	SKU            string              `json:"sku"`
	Description    *string             `json:"description,omitempty"`
	BasePriceCents int64               `json:"basePriceCents"`
	InStock        bool                `json:"inStock"`
	InSeason       bool                `json:"inSeason"`
	Tiers          []PriceTierResponse `json:"tiers,omitempty"`
	CreatedAt      string              `json:"createdAt"`
	UpdatedAt      string              `json:"updatedAt"`
}

type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// Price tiers

type PriceTierRequest struct {
	MinQuantity int  `json:"minQuantity" validate:"required,min=1"`
	MaxQuantity *int `json:"maxQuantity,omitempty" validate:"omitempty,min=1"`
	DiscountBps int  `json:"discountBps" validate:"min=0,max=10000"`
}

type ReplaceTiersRequest struct {
	Tiers []PriceTierRequest `json:"tiers" validate:"required,max=20,dive"`
}

type PriceTierResponse struct {
	ID          uuid.UUID `json:"id"`
	MinQuantity int       `json:"minQuantity"`
	MaxQuantity *int      `json:"maxQuantity,omitempty"`
	DiscountBps int       `json:"discountBps"`
}

type PriceTierListResponse struct {
	Items []PriceTierResponse `json:"items"`
}
