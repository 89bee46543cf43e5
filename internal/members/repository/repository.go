package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"plantstore_backend/platform/apperr"
)

const memberNotFoundMessage = "member not found"

// Repo implements the members repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new members repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// UpsertMember inserts or refreshes a member row keyed by the token's
// member ID.
func (r *Repo) UpsertMember(ctx context.Context, params UpsertMemberParams) (Member, error) {
	query := `
		INSERT INTO members (id, subject, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			subject = EXCLUDED.subject,
			email = COALESCE(EXCLUDED.email, members.email),
			updated_at = now()
		RETURNING id, subject, email, display_name, joined_at, updated_at`

	var member Member
	var joinedAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, params.ID, params.Subject, params.Email).Scan(
		&member.ID, &member.Subject, &member.Email, &member.DisplayName, &joinedAt, &updatedAt,
	); err != nil {
		return Member{}, fmt.Errorf("upsert member: %w", err)
	}

	member.JoinedAt = joinedAt.Format(time.RFC3339)
	member.UpdatedAt = updatedAt.Format(time.RFC3339)
	return member, nil
}

// GetMemberByID retrieves a member by ID.
func (r *Repo) GetMemberByID(ctx context.Context, id uuid.UUID) (Member, error) {
	query := `
		SELECT id, subject, email, display_name, joined_at, updated_at
		FROM members
		WHERE id = $1`

	var member Member
	var joinedAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&member.ID, &member.Subject, &member.Email, &member.DisplayName, &joinedAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, apperr.NotFound(memberNotFoundMessage)
		}
		return Member{}, fmt.Errorf("get member by id: %w", err)
	}

	member.JoinedAt = joinedAt.Format(time.RFC3339)
	member.UpdatedAt = updatedAt.Format(time.RFC3339)
	return member, nil
}

// UpdateMember updates a member's profile fields.
func (r *Repo) UpdateMember(ctx context.Context, params UpdateMemberParams) (Member, error) {
	query := `
		UPDATE members
		SET
			display_name = COALESCE($2, display_name),
			updated_at = now()
		WHERE id = $1
		RETURNING id, subject, email, display_name, joined_at, updated_at`

	var member Member
	var joinedAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, params.ID, params.DisplayName).Scan(
		&member.ID, &member.Subject, &member.Email, &member.DisplayName, &joinedAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, apperr.NotFound(memberNotFoundMessage)
		}
		return Member{}, fmt.Errorf("update member: %w", err)
	}

	member.JoinedAt = joinedAt.Format(time.RFC3339)
	member.UpdatedAt = updatedAt.Format(time.RFC3339)
	return member, nil
}
