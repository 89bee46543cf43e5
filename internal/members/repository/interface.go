package repository

import (
	"context"

	"github.com/google/uuid"
)

// Member is a storefront membership record.
type Member struct {
	ID          uuid.UUID
	Subject     string
	Email       *string
	DisplayName *string
	JoinedAt    string
	UpdatedAt   string
}

type UpsertMemberParams struct {
	ID      uuid.UUID
	Subject string
	Email   *string
}

type UpdateMemberParams struct {
	ID          uuid.UUID
	DisplayName *string
}

// Repository defines the members persistence operations.
type Repository interface {
	// UpsertMember inserts the member on first sight and refreshes the
	// subject and email claims on later sightings.
	UpsertMember(ctx context.Context, params UpsertMemberParams) (Member, error)
	GetMemberByID(ctx context.Context, id uuid.UUID) (Member, error)
	UpdateMember(ctx context.Context, params UpdateMemberParams) (Member, error)
}
