package repository

import (
	"context"
	"testing"
	"time"

	"plantstore_backend/internal/cart/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, time.Hour), mr
}

func TestStore_SaveAndGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	memberID := uuid.New()

	snap := Snapshot{
		Lines: []domain.Line{
			{
				Product: domain.ProductSnapshot{
					ID:             uuid.New(),
					Name:           "Monstera",
					BasePriceCents: 10000,
					Tiers: []domain.PriceTier{
						{MinQuantity: 1, MaxQuantity: 4},
						{MinQuantity: 5, DiscountBps: 1000},
					},
				},
				Quantity: 5,
			},
		},
		TotalCents:    45000,
		TotalQuantity: 5,
		UpdatedAt:     time.Now().UTC(),
	}

	if err := store.Save(ctx, memberID, snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, found, err := store.Get(ctx, memberID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found {
		t.Fatal("expected snapshot to exist")
	}
	if len(got.Lines) != 1 || got.Lines[0].Quantity != 5 {
		t.Fatalf("unexpected lines: %+v", got.Lines)
	}
	if got.Lines[0].Product.Name != "Monstera" {
		t.Fatalf("unexpected product: %+v", got.Lines[0].Product)
	}
	if len(got.Lines[0].Product.Tiers) != 2 {
		t.Fatalf("expected tier table preserved, got %+v", got.Lines[0].Product.Tiers)
	}
}

func TestStore_GetMissingMember(t *testing.T) {
	store, _ := newTestStore(t)

	_, found, err := store.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Fatal("expected no snapshot")
	}
}

func TestStore_CorruptSnapshotTreatedAsAbsent(t *testing.T) {
	store, mr := newTestStore(t)
	memberID := uuid.New()

	if err := mr.Set("cart:"+memberID.String(), "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, found, err := store.Get(context.Background(), memberID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Fatal("corrupted snapshot must read as absent")
	}
}

func TestStore_SaveRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	memberID := uuid.New()

	if err := store.Save(ctx, memberID, Snapshot{UpdatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if mr.TTL("cart:"+memberID.String()) != time.Hour {
		t.Fatalf("expected TTL of 1h, got %v", mr.TTL("cart:"+memberID.String()))
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	memberID := uuid.New()

	if err := store.Save(ctx, memberID, Snapshot{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Delete(ctx, memberID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(ctx, memberID); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}

	_, found, err := store.Get(ctx, memberID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Fatal("expected snapshot gone")
	}
}
