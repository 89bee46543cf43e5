package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantstore_backend/internal/members/service"
	"plantstore_backend/internal/members/transport"
	"plantstore_backend/platform/httpkit"
	"plantstore_backend/platform/validator"
)

// Handler handles HTTP requests for members.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new members handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetMe returns the current member's profile, provisioning it from the
// token claims on first sight.
// GET /api/v1/members/me
func (h *Handler) GetMe(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.EnsureMember(c.Request.Context(), identity.MemberID(), identity.Subject(), identity.Email())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateMe updates the current member's display name.
// PUT /api/v1/members/me
func (h *Handler) UpdateMe(c *gin.Context) {
	var req transport.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.UpdateMember(c.Request.Context(), identity.MemberID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
