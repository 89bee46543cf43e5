// Package cart provides the cart bounded context module.
package cart

import (
	"time"

	"plantstore_backend/internal/cart/handler"
	"plantstore_backend/internal/cart/repository"
	"plantstore_backend/internal/cart/service"
	apphttp "plantstore_backend/internal/http"
	"plantstore_backend/platform/logger"
	"plantstore_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

// Module is the cart bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	store   *repository.Store
}

// NewModule creates and initializes the cart module. The tier source is the
// catalog's read capability; sweeper may be nil when no scheduler runs.
func NewModule(client *redis.Client, products service.TierSource, sweeper service.SweepScheduler, snapshotTTL, abandonTTL time.Duration, val *validator.Validator, log *logger.Logger) *Module {
	store := repository.NewStore(client, snapshotTTL)
	svc := service.New(products, store, sweeper, abandonTTL, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		store:   store,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "cart"
}

// Service returns the service layer for external use (scheduler worker).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts cart routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/cart", m.handler.GetCart)
	ctx.Protected.POST("/cart/items", m.handler.AddItem)
	ctx.Protected.PUT("/cart/items/:productId", m.handler.UpdateItem)
	ctx.Protected.DELETE("/cart/items/:productId", m.handler.RemoveItem)
	ctx.Protected.DELETE("/cart", m.handler.ClearCart)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
