package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"plantstore_backend/internal/members/repository"
	"plantstore_backend/internal/members/transport"
	"plantstore_backend/platform/logger"
)

// Service provides business logic for members.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new members service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// EnsureMember provisions the member row from token claims on first sight
// and returns the current profile.
func (s *Service) EnsureMember(ctx context.Context, memberID uuid.UUID, subject, email string) (transport.MemberResponse, error) {
	params := repository.UpsertMemberParams{
		ID:      memberID,
		Subject: subject,
	}
	if email != "" {
		params.Email = &email
	}

	member, err := s.repo.UpsertMember(ctx, params)
	if err != nil {
		return transport.MemberResponse{}, err
	}
	return toMemberResponse(member), nil
}

// UpdateMember updates the member's display name.
func (s *Service) UpdateMember(ctx context.Context, memberID uuid.UUID, req transport.UpdateMemberRequest) (transport.MemberResponse, error) {
	displayName := req.DisplayName
	if displayName != nil {
		trimmed := strings.TrimSpace(*displayName)
		displayName = &trimmed
	}

	member, err := s.repo.UpdateMember(ctx, repository.UpdateMemberParams{
		ID:          memberID,
		DisplayName: displayName,
	})
	if err != nil {
		return transport.MemberResponse{}, err
	}

	s.log.Info("member updated", "id", member.ID)
	return toMemberResponse(member), nil
}

func toMemberResponse(member repository.Member) transport.MemberResponse {
	return transport.MemberResponse{
		ID:          member.ID,
		Subject:     member.Subject,
		Email:       member.Email,
		DisplayName: member.DisplayName,
		JoinedAt:    member.JoinedAt,
		UpdatedAt:   member.UpdatedAt,
	}
}
