// Package eventplanning provides the fashion events and planning roster module.
package eventplanning

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"fashionos_backend/internal/eventplanning/handler"
	"fashionos_backend/internal/eventplanning/repository"
	"fashionos_backend/internal/eventplanning/service"
	apphttp "fashionos_backend/internal/http"
	"fashionos_backend/platform/events"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/validator"
)

// Module is the event planning bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the event planning module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "eventplanning"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts event routes. Every route passes through the access
// control guard for the "events" resource; routes carrying :id also run the
// ownership check so organizers can only touch their own events.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/events")
	group.GET("", ctx.Guard("events", "list", ""), m.handler.ListEvents)
	group.POST("", ctx.Guard("events", "create", ""), m.handler.CreateEvent)
	group.GET("/:id", ctx.Guard("events", "show", "id"), m.handler.GetEvent)
	group.PATCH("/:id", ctx.Guard("events", "edit", "id"), m.handler.UpdateEvent)
	group.DELETE("/:id", ctx.Guard("events", "delete", "id"), m.handler.DeleteEvent)

	group.GET("/:id/planning", ctx.Guard("events", "show", "id"), m.handler.GetPlanning)
	group.PATCH("/:id/planning", ctx.Guard("events", "edit", "id"), m.handler.UpdatePlanning)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
