package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"plantstore_backend/internal/catalog/repository"
	"plantstore_backend/internal/catalog/transport"
	"plantstore_backend/platform/apperr"
	"plantstore_backend/platform/logger"
)

type fakeRepo struct {
	repository.Repository

	products map[uuid.UUID]repository.Product
	tiers    map[uuid.UUID][]repository.PriceTier
	replaced []repository.TierParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: make(map[uuid.UUID]repository.Product),
		tiers:    make(map[uuid.UUID][]repository.PriceTier),
	}
}

func (f *fakeRepo) GetProductByID(_ context.Context, id uuid.UUID) (repository.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return repository.Product{}, apperr.NotFound("product not found")
	}
	return product, nil
}

func (f *fakeRepo) GetProductTiers(_ context.Context, productID uuid.UUID) ([]repository.PriceTier, error) {
	return f.tiers[productID], nil
}

func (f *fakeRepo) ReplaceProductTiers(_ context.Context, productID uuid.UUID, tiers []repository.TierParams) ([]repository.PriceTier, error) {
	if _, ok := f.products[productID]; !ok {
		return nil, apperr.NotFound("product not found")
	}
	f.replaced = tiers
	result := make([]repository.PriceTier, 0, len(tiers))
	for _, params := range tiers {
		result = append(result, repository.PriceTier{
			ID:          uuid.New(),
			ProductID:   productID,
			MinQuantity: params.MinQuantity,
			MaxQuantity: params.MaxQuantity,
			DiscountBps: params.DiscountBps,
		})
	}
	f.tiers[productID] = result
	return result, nil
}

func intPtr(v int) *int { return &v }

func TestProductSnapshotMapsTierTable(t *testing.T) {
	repo := newFakeRepo()
	productID := uuid.New()
	repo.products[productID] = repository.Product{
		ID:             productID,
		Name:           "Monstera Deliciosa",
		SKU:            "PLANT-001",
		BasePriceCents: 10000,
		InStock:        true,
	}
	repo.tiers[productID] = []repository.PriceTier{
		{ID: uuid.New(), ProductID: productID, MinQuantity: 1, MaxQuantity: intPtr(4), DiscountBps: 0},
		{ID: uuid.New(), ProductID: productID, MinQuantity: 5, MaxQuantity: intPtr(9), DiscountBps: 1000},
		{ID: uuid.New(), ProductID: productID, MinQuantity: 10, MaxQuantity: nil, DiscountBps: 2000},
	}

	svc := New(repo, logger.New("development"))
	snapshot, err := svc.ProductSnapshot(context.Background(), productID)
	if err != nil {
		t.Fatalf("ProductSnapshot: %v", err)
	}

	if snapshot.BasePriceCents != 10000 {
		t.Fatalf("expected base price 10000, got %d", snapshot.BasePriceCents)
	}
	if len(snapshot.Tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(snapshot.Tiers))
	}
	if snapshot.Tiers[1].MaxQuantity != 9 || snapshot.Tiers[1].DiscountBps != 1000 {
		t.Fatalf("unexpected second band: %+v", snapshot.Tiers[1])
	}
	if snapshot.Tiers[2].MaxQuantity != 0 {
		t.Fatalf("open-ended band should map to zero max, got %d", snapshot.Tiers[2].MaxQuantity)
	}
}

func TestProductSnapshotRejectsOutOfStock(t *testing.T) {
	repo := newFakeRepo()
	productID := uuid.New()
	repo.products[productID] = repository.Product{
		ID:             productID,
		Name:           "Fiddle Leaf Fig",
		SKU:            "PLANT-002",
		BasePriceCents: 15000,
		InStock:        false,
	}

	svc := New(repo, logger.New("development"))
	if _, err := svc.ProductSnapshot(context.Background(), productID); apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected conflict for out-of-stock product, got %v", err)
	}
}

func TestProductSnapshotUnknownProduct(t *testing.T) {
	svc := New(newFakeRepo(), logger.New("development"))
	if _, err := svc.ProductSnapshot(context.Background(), uuid.New()); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReplaceProductTiersRejectsInvertedBand(t *testing.T) {
	repo := newFakeRepo()
	productID := uuid.New()
	repo.products[productID] = repository.Product{ID: productID, Name: "Snake Plant", SKU: "PLANT-003", InStock: true}

	svc := New(repo, logger.New("development"))
	_, err := svc.ReplaceProductTiers(context.Background(), productID, transport.ReplaceTiersRequest{
		Tiers: []transport.PriceTierRequest{
			{MinQuantity: 5, MaxQuantity: intPtr(2), DiscountBps: 500},
		},
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.replaced != nil {
		t.Fatalf("tier table should not have been replaced")
	}
}

func TestReplaceProductTiersStoresSubmittedBands(t *testing.T) {
	repo := newFakeRepo()
	productID := uuid.New()
	repo.products[productID] = repository.Product{ID: productID, Name: "Snake Plant", SKU: "PLANT-003", InStock: true}

	svc := New(repo, logger.New("development"))
	result, err := svc.ReplaceProductTiers(context.Background(), productID, transport.ReplaceTiersRequest{
		Tiers: []transport.PriceTierRequest{
			{MinQuantity: 1, MaxQuantity: intPtr(4), DiscountBps: 0},
			{MinQuantity: 5, MaxQuantity: nil, DiscountBps: 1500},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceProductTiers: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 bands, got %d", len(result.Items))
	}
	if result.Items[1].DiscountBps != 1500 || result.Items[1].MaxQuantity != nil {
		t.Fatalf("unexpected open-ended band: %+v", result.Items[1])
	}
}
