// Package members provides the membership bounded context module.
package members

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "plantstore_backend/internal/http"
	"plantstore_backend/internal/members/handler"
	"plantstore_backend/internal/members/repository"
	"plantstore_backend/internal/members/service"
	"plantstore_backend/platform/logger"
	"plantstore_backend/platform/validator"
)

// Module is the members bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the members module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "members"
}

// RegisterRoutes mounts member routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/members/me", m.handler.GetMe)
	ctx.Protected.PUT("/members/me", m.handler.UpdateMe)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
