// Package sponsors provides the sponsor profiles and sponsorships module.
package sponsors

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "fashionos_backend/internal/http"
	"fashionos_backend/internal/sponsors/handler"
	"fashionos_backend/internal/sponsors/repository"
	"fashionos_backend/internal/sponsors/service"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/validator"
)

// Module is the sponsors bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the sponsors module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "sponsors"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts sponsor routes behind the access control guard.
// Sponsor profiles and sponsorships carrying :id run the ownership check.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	profiles := ctx.Protected.Group("/sponsor-profiles")
	profiles.GET("", ctx.Guard("sponsor_profiles", "list", ""), m.handler.ListSponsors)
	profiles.POST("", ctx.Guard("sponsor_profiles", "create", ""), m.handler.CreateSponsor)
	profiles.GET("/me", ctx.Guard("sponsor_profiles", "show", ""), m.handler.MySponsor)
	profiles.GET("/:id", ctx.Guard("sponsor_profiles", "show", "id"), m.handler.GetSponsor)
	profiles.PATCH("/:id", ctx.Guard("sponsor_profiles", "edit", "id"), m.handler.UpdateSponsor)

	sponsorships := ctx.Protected.Group("/sponsorships")
	sponsorships.GET("", ctx.Guard("sponsorships", "list", ""), m.handler.ListMySponsorships)
	sponsorships.POST("", ctx.Guard("sponsorships", "create", ""), m.handler.CreateSponsorship)
	sponsorships.GET("/:id", ctx.Guard("sponsorships", "show", "id"), m.handler.GetSponsorship)
	sponsorships.PATCH("/:id", ctx.Guard("sponsorships", "edit", "id"), m.handler.UpdateSponsorship)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
