// Package repository persists cart snapshots in Redis. A snapshot's
// aggregate fields are advisory: the service recomputes them through the
// cart engine on every load.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"plantstore_backend/internal/cart/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Snapshot is the serialized cart shape stored per member.
type Snapshot struct {
	Lines             []domain.Line `json:"lines"`
	TotalCents        int64         `json:"totalCents"`
	TotalQuantity     int           `json:"totalQuantity"`
	TotalSavingsCents int64         `json:"totalSavingsCents"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// Store reads and writes cart snapshots with a sliding TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a snapshot store. Every save refreshes the TTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// NewClient creates a redis client from a redis:// URL.
func NewClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

func cartKey(memberID uuid.UUID) string {
	return "cart:" + memberID.String()
}

// Get loads a member's snapshot. The second return is false when no
// snapshot exists.
func (s *Store) Get(ctx context.Context, memberID uuid.UUID) (Snapshot, bool, error) {
	raw, err := s.client.Get(ctx, cartKey(memberID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("get cart snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A corrupted snapshot is treated as absent rather than fatal;
		// the member starts from an empty cart.
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save writes a member's snapshot and refreshes its TTL.
func (s *Store) Save(ctx context.Context, memberID uuid.UUID, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(memberID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

// Delete removes a member's snapshot. Deleting an absent snapshot is a no-op.
func (s *Store) Delete(ctx context.Context, memberID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(memberID)).Err(); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}
