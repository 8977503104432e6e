// Package scoring provides the lead scoring bounded context module.
// Scores are recomputed on demand via the admin API and automatically
// whenever an interaction is logged.
package scoring

import (
	"context"

	"fashionos_backend/internal/events"
	apphttp "fashionos_backend/internal/http"
	"fashionos_backend/internal/scoring/engine"
	"fashionos_backend/internal/scoring/handler"
	"fashionos_backend/internal/scoring/repository"
	"fashionos_backend/internal/scoring/service"
	"fashionos_backend/platform/config"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the scoring bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the scoring module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, cfg config.ScoringConfig, val *validator.Validator, log *logger.Logger) *Module {
	weights := engine.DefaultWeights()
	if days := cfg.GetScoringWindowDays(); days > 0 {
		weights.WindowDays = days
	}

	repo := repository.New(pool)
	svc := service.New(repo, engine.New(weights), bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "scoring"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts scoring routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	adminGroup := ctx.Admin.Group("/scoring")
	adminGroup.POST("/run", m.handler.Run)
	adminGroup.GET("/contacts/:id/history", m.handler.History)
}

// RegisterHandlers subscribes to domain events that trigger rescoring.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.InteractionLogged{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.InteractionLogged:
		_, err := m.service.ScoreContact(ctx, e.ContactID)
		return err
	default:
		return nil
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
