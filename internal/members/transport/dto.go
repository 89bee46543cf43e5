package transport

import "github.com/google/uuid"

type UpdateMemberRequest struct {
	DisplayName *string `json:"displayName,omitempty" validate:"omitempty,min=1,max=100"`
}

type MemberResponse struct {
	ID          uuid.UUID `json:"id"`
	Subject     string    `json:"subject"`
	Email       *string   `json:"email,omitempty"`
	DisplayName *string   `json:"displayName,omitempty"`
	JoinedAt    string    `json:"joinedAt"`
	UpdatedAt   string    `json:"updatedAt"`
}
