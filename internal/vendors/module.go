// Package vendors provides the vendor profiles, bookings, and availability module.
package vendors

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "fashionos_backend/internal/http"
	"fashionos_backend/internal/vendors/handler"
	"fashionos_backend/internal/vendors/repository"
	"fashionos_backend/internal/vendors/service"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/validator"
)

// Module is the vendors bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the vendors module.
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
	return "vendors"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts vendor routes behind the access control guard.
// Profile and booking routes carrying :id run the ownership check so vendors
// only reach their own records.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	profiles := ctx.Protected.Group("/vendor-profiles")
	profiles.GET("", ctx.Guard("vendor_profiles", "list", ""), m.handler.ListProfiles)
	profiles.POST("", ctx.Guard("vendor_profiles", "create", ""), m.handler.CreateProfile)
	profiles.GET("/me", ctx.Guard("vendor_profiles", "show", ""), m.handler.MyProfile)
	profiles.GET("/:id", ctx.Guard("vendor_profiles", "show", "id"), m.handler.GetProfile)
	profiles.PATCH("/:id", ctx.Guard("vendor_profiles", "edit", "id"), m.handler.UpdateProfile)

	bookings := ctx.Protected.Group("/bookings")
	bookings.GET("", ctx.Guard("bookings", "list", ""), m.handler.ListMyBookings)
	bookings.POST("", ctx.Guard("bookings", "create", ""), m.handler.CreateBooking)
	bookings.GET("/:id", ctx.Guard("bookings", "show", "id"), m.handler.GetBooking)
	bookings.PATCH("/:id", ctx.Guard("bookings", "edit", "id"), m.handler.UpdateBooking)

	availability := ctx.Protected.Group("/availability")
	availability.GET("", ctx.Guard("availability", "list", ""), m.handler.ListAvailability)
	availability.POST("", ctx.Guard("availability", "edit", ""), m.handler.AddAvailability)
	availability.DELETE("/:id", ctx.Guard("availability", "edit", "id"), m.handler.RemoveAvailability)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
