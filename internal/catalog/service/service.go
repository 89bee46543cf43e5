package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"plantstore_backend/internal/cart/domain"
	"plantstore_backend/internal/catalog/repository"
	"plantstore_backend/internal/catalog/transport"
	"plantstore_backend/platform/apperr"
	"plantstore_backend/platform/logger"
)

// Service provides business logic for the catalog.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// GetProduct retrieves a product with its tier table.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (transport.ProductResponse, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	tiers, err := s.repo.GetProductTiers(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return toProductResponse(product, tiers), nil
}

// ListProducts retrieves products with search and pagination.
func (s *Service) ListProducts(ctx context.Context, req transport.ListProductsRequest) (transport.ProductListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	params := repository.ListProductsParams{
		Search:      strings.TrimSpace(req.Search),
		InStockOnly: req.InStockOnly,
		Offset:      (page - 1) * pageSize,
		Limit:       pageSize,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
	}

	items, total, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	return toProductListResponse(items, total, page, pageSize), nil
}

// CreateProduct creates a new product.
func (s *Service) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (transport.ProductResponse, error) {
	product, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		Name:           strings.TrimSpace(req.Name),
		SKU:            strings.TrimSpace(req.SKU),
		Description:    req.Description,
		BasePriceCents: req.BasePriceCents,
		InStock:        req.InStock,
		InSeason:       req.InSeason,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product created", "id", product.ID, "sku", product.SKU)
	return toProductResponse(product, nil), nil
}

// UpdateProduct updates an existing product.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (transport.ProductResponse, error) {
	name := req.Name
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		name = &trimmed
	}
	sku := req.SKU
	if sku != nil {
		trimmed := strings.TrimSpace(*sku)
		sku = &trimmed
	}

	product, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:             id,
		Name:           name,
		SKU:            sku,
		Description:    req.Description,
		BasePriceCents: req.BasePriceCents,
		InStock:        req.InStock,
		InSeason:       req.InSeason,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	tiers, err := s.repo.GetProductTiers(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product updated", "id", product.ID, "sku", product.SKU)
	return toProductResponse(product, tiers), nil
}

// DeleteProduct deletes a product and its tier table.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted", "id", id)
	return nil
}

// GetProductTiers retrieves the product's tier table.
func (s *Service) GetProductTiers(ctx context.Context, productID uuid.UUID) (transport.PriceTierListResponse, error) {
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return transport.PriceTierListResponse{}, err
	}
	tiers, err := s.repo.GetProductTiers(ctx, productID)
	if err != nil {
		return transport.PriceTierListResponse{}, err
	}
	return transport.PriceTierListResponse{Items: toTierResponses(tiers)}, nil
}

// ReplaceProductTiers replaces the product's whole tier table. Bands are
// stored as submitted; pricing scans them in ascending min quantity order
// and falls back to the base price when no band matches, so a sparse or
// overlapping table degrades without failing.
func (s *Service) ReplaceProductTiers(ctx context.Context, productID uuid.UUID, req transport.ReplaceTiersRequest) (transport.PriceTierListResponse, error) {
	params := make([]repository.TierParams, 0, len(req.Tiers))
	for _, tier := range req.Tiers {
		if tier.MaxQuantity != nil && *tier.MaxQuantity < tier.MinQuantity {
			return transport.PriceTierListResponse{}, apperr.Validation("tier max quantity must not be below min quantity")
		}
		params = append(params, repository.TierParams{
			MinQuantity: tier.MinQuantity,
			MaxQuantity: tier.MaxQuantity,
			DiscountBps: tier.DiscountBps,
		})
	}

	tiers, err := s.repo.ReplaceProductTiers(ctx, productID, params)
	if err != nil {
		return transport.PriceTierListResponse{}, err
	}

	s.log.Info("product tiers replaced", "productId", productID, "tiers", len(tiers))
	return transport.PriceTierListResponse{Items: toTierResponses(tiers)}, nil
}

// ProductSnapshot returns the pricing snapshot the cart engine consumes.
// Out-of-stock products are not purchasable.
func (s *Service) ProductSnapshot(ctx context.Context, productID uuid.UUID) (domain.ProductSnapshot, error) {
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return domain.ProductSnapshot{}, err
	}
	if !product.InStock {
		return domain.ProductSnapshot{}, apperr.Conflict("product is out of stock")
	}

	tiers, err := s.repo.GetProductTiers(ctx, productID)
	if err != nil {
		return domain.ProductSnapshot{}, err
	}

	snapshot := domain.ProductSnapshot{
		ID:             product.ID,
		Name:           product.Name,
		BasePriceCents: product.BasePriceCents,
		Tiers:          make([]domain.PriceTier, 0, len(tiers)),
	}
	for _, tier := range tiers {
		band := domain.PriceTier{
			MinQuantity: tier.MinQuantity,
			DiscountBps: tier.DiscountBps,
		}
		if tier.MaxQuantity != nil {
			band.MaxQuantity = *tier.MaxQuantity
		}
		snapshot.Tiers = append(snapshot.Tiers, band)
	}
	return snapshot, nil
}

func toProductResponse(product repository.Product, tiers []repository.PriceTier) transport.ProductResponse {
	resp := transport.ProductResponse{
		ID:             product.ID,
		Name:           product.Name,
		SKU:            product.SKU,
		Description:    product.Description,
		BasePriceCents: product.BasePriceCents,
		InStock:        product.InStock,
		InSeason:       product.InSeason,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
	if len(tiers) > 0 {
		resp.Tiers = toTierResponses(tiers)
	}
	return resp
}

func toProductListResponse(items []repository.Product, total, page, pageSize int) transport.ProductListResponse {
	responses := make([]transport.ProductResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toProductResponse(item, nil))
	}
	totalPages := (total + pageSize - 1) / pageSize
	return transport.ProductListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func toTierResponses(tiers []repository.PriceTier) []transport.PriceTierResponse {
	responses := make([]transport.PriceTierResponse, 0, len(tiers))
	for _, tier := range tiers {
		responses = append(responses, transport.PriceTierResponse{
			ID:          tier.ID,
			MinQuantity: tier.MinQuantity,
			MaxQuantity: tier.MaxQuantity,
			DiscountBps: tier.DiscountBps,
		})
	}
	return responses
}
