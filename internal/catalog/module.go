// Package catalog provides the catalog bounded context module.
package catalog

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"plantstore_backend/internal/catalog/handler"
	"plantstore_backend/internal/catalog/repository"
	"plantstore_backend/internal/catalog/service"
	apphttp "plantstore_backend/internal/http"
	"plantstore_backend/platform/logger"
	"plantstore_backend/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module.
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
	return "catalog"
}

// Service returns the service layer for external use. The cart module
// consumes it as its tier source.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Protected read-only endpoints
	ctx.Protected.GET("/catalog/products", m.handler.ListProducts)
	ctx.Protected.GET("/catalog/products/:id", m.handler.GetProduct)
	ctx.Protected.GET("/catalog/products/:id/tiers", m.handler.GetProductTiers)

	// Admin CRUD endpoints
	adminGroup := ctx.Admin.Group("/catalog")
	adminGroup.POST("/products", m.handler.CreateProduct)
	adminGroup.PUT("/products/:id", m.handler.UpdateProduct)
	adminGroup.DELETE("/products/:id", m.handler.DeleteProduct)
	adminGroup.PUT("/products/:id/tiers", m.handler.ReplaceProductTiers)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
