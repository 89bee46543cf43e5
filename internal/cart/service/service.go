// Package service orchestrates cart commands for members: it hydrates the
// cart engine from the snapshot store, applies exactly one command, and
// persists the result. Commands for the same member are serialized so each
// observes the completed result of the previous one.
package service

import (
	"context"
	"sync"
	"time"

	"plantstore_backend/internal/cart/domain"
	"plantstore_backend/internal/cart/repository"
	"plantstore_backend/internal/cart/transport"
	"plantstore_backend/platform/logger"

	"github.com/google/uuid"
)

// TierSource supplies product snapshots with their ordered tier tables.
// The catalog module implements this; the cart never queries the store
// directly.
type TierSource interface {
	ProductSnapshot(ctx context.Context, productID uuid.UUID) (domain.ProductSnapshot, error)
}

// SnapshotStore persists cart snapshots between requests.
type SnapshotStore interface {
	Get(ctx context.Context, memberID uuid.UUID) (repository.Snapshot, bool, error)
	Save(ctx context.Context, memberID uuid.UUID, snap repository.Snapshot) error
	Delete(ctx context.Context, memberID uuid.UUID) error
}

// SweepScheduler schedules the abandoned-cart sweep for a member.
type SweepScheduler interface {
	ScheduleSweep(ctx context.Context, memberID uuid.UUID, at time.Time) error
}

// Service provides business logic for carts.
type Service struct {
	products   TierSource
	store      SnapshotStore
	sweeper    SweepScheduler
	abandonTTL time.Duration
	log        *logger.Logger

	locks sync.Map // member id -> *sync.Mutex
}

// New creates a new cart service. sweeper may be nil when no scheduler is
// configured; sweeps are then skipped.
func New(products TierSource, store SnapshotStore, sweeper SweepScheduler, abandonTTL time.Duration, log *logger.Logger) *Service {
	return &Service{
		products:   products,
		store:      store,
		sweeper:    sweeper,
		abandonTTL: abandonTTL,
		log:        log,
	}
}

// Get returns the member's current cart.
func (s *Service) Get(ctx context.Context, memberID uuid.UUID) (transport.CartResponse, error) {
	unlock := s.lock(memberID)
	defer unlock()

	cart, err := s.hydrate(ctx, memberID)
	if err != nil {
		return transport.CartResponse{}, err
	}
	return toCartResponse(cart), nil
}

// AddItem adds quantity of a product to the member's cart, repricing the
// line against its new total quantity.
func (s *Service) AddItem(ctx context.Context, memberID uuid.UUID, req transport.AddItemRequest) (transport.CartResponse, error) {
	unlock := s.lock(memberID)
	defer unlock()

	cart, err := s.hydrate(ctx, memberID)
	if err != nil {
		return transport.CartResponse{}, err
	}

	product, err := s.products.ProductSnapshot(ctx, req.ProductID)
	if err != nil {
		return transport.CartResponse{}, err
	}

	if err := cart.Add(product, req.Quantity); err != nil {
		return transport.CartResponse{}, err
	}

	if err := s.persist(ctx, memberID, cart, "item_added"); err != nil {
		return transport.CartResponse{}, err
	}
	return toCartResponse(cart), nil
}

// UpdateItem replaces a line's quantity. Zero removes the line.
func (s *Service) UpdateItem(ctx context.Context, memberID uuid.UUID, productID uuid.UUID, quantity int) (transport.CartResponse, error) {
	unlock := s.lock(memberID)
	defer unlock()

	cart, err := s.hydrate(ctx, memberID)
	if err != nil {
		return transport.CartResponse{}, err
	}

	if err := cart.UpdateQuantity(productID, quantity); err != nil {
		return transport.CartResponse{}, err
	}

	if err := s.persist(ctx, memberID, cart, "item_updated"); err != nil {
		return transport.CartResponse{}, err
	}
	return toCartResponse(cart), nil
}

// RemoveItem deletes a line. Removing an absent product is a no-op.
func (s *Service) RemoveItem(ctx context.Context, memberID uuid.UUID, productID uuid.UUID) (transport.CartResponse, error) {
	unlock := s.lock(memberID)
	defer unlock()

	cart, err := s.hydrate(ctx, memberID)
	if err != nil {
		return transport.CartResponse{}, err
	}

	cart.Remove(productID)

	if err := s.persist(ctx, memberID, cart, "item_removed"); err != nil {
		return transport.CartResponse{}, err
	}
	return toCartResponse(cart), nil
}

// Clear empties the member's cart and drops the snapshot.
func (s *Service) Clear(ctx context.Context, memberID uuid.UUID) (transport.CartResponse, error) {
	unlock := s.lock(memberID)
	defer unlock()

	if err := s.store.Delete(ctx, memberID); err != nil {
		return transport.CartResponse{}, err
	}

	s.log.CartEvent("cleared", memberID.String(), 0, 0)
	return toCartResponse(domain.NewCart()), nil
}

// ExpireIfAbandoned deletes the member's snapshot when it has been idle for
// at least the abandon TTL. Called by the scheduler worker; returns the
// time of the next sweep when the cart is still active.
func (s *Service) ExpireIfAbandoned(ctx context.Context, memberID uuid.UUID) (*time.Time, error) {
	unlock := s.lock(memberID)
	defer unlock()

	snap, found, err := s.store.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	idleSince := snap.UpdatedAt.Add(s.abandonTTL)
	if time.Now().Before(idleSince) {
		return &idleSince, nil
	}

	if err := s.store.Delete(ctx, memberID); err != nil {
		return nil, err
	}
	s.log.CartEvent("expired", memberID.String(), snap.TotalQuantity, snap.TotalCents)
	return nil, nil
}

// hydrate loads the member's snapshot into a fresh engine. Aggregates and
// per-line pricing from the snapshot are recomputed by Load.
func (s *Service) hydrate(ctx context.Context, memberID uuid.UUID) (*domain.Cart, error) {
	cart := domain.NewCart()

	snap, found, err := s.store.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if found {
		cart.Load(snap.Lines)
	}
	return cart, nil
}

func (s *Service) persist(ctx context.Context, memberID uuid.UUID, cart *domain.Cart, event string) error {
	now := time.Now().UTC()
	snap := repository.Snapshot{
		Lines:             cart.Lines(),
		TotalCents:        cart.TotalCents(),
		TotalQuantity:     cart.TotalQuantity(),
		TotalSavingsCents: cart.TotalSavingsCents(),
		UpdatedAt:         now,
	}
	if err := s.store.Save(ctx, memberID, snap); err != nil {
		return err
	}

	if s.sweeper != nil {
		if err := s.sweeper.ScheduleSweep(ctx, memberID, now.Add(s.abandonTTL)); err != nil {
			// Sweeping is best effort; the snapshot TTL still bounds the key.
			s.log.Warn("failed to schedule cart sweep", "member_id", memberID, "error", err)
		}
	}

	s.log.CartEvent(event, memberID.String(), cart.TotalQuantity(), cart.TotalCents())
	return nil
}

func (s *Service) lock(memberID uuid.UUID) func() {
	actual, _ := s.locks.LoadOrStore(memberID, &sync.Mutex{})
	mu := actual.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func toCartResponse(cart *domain.Cart) transport.CartResponse {
	lines := cart.Lines()
	out := transport.CartResponse{
		Lines:             make([]transport.LineResponse, 0, len(lines)),
		TotalCents:        cart.TotalCents(),
		TotalQuantity:     cart.TotalQuantity(),
		TotalSavingsCents: cart.TotalSavingsCents(),
	}

	for _, line := range lines {
		item := transport.LineResponse{
			ProductID:           line.Product.ID,
			Name:                line.Product.Name,
			Quantity:            line.Quantity,
			BasePriceCents:      line.Product.BasePriceCents,
			EffectivePriceCents: line.EffectivePriceCents,
			SubtotalCents:       line.SubtotalCents,
			SavingsCents:        line.SavingsCents(),
		}
		if line.Tier != nil {
			tier := transport.TierResponse{
				MinQuantity: line.Tier.MinQuantity,
				DiscountBps: line.Tier.DiscountBps,
			}
			if !line.Tier.Unbounded() {
				max := line.Tier.MaxQuantity
				tier.MaxQuantity = &max
			}
			item.Tier = &tier
		}
		out.Lines = append(out.Lines, item)
	}
	return out
}
