// Package crm provides the contacts, accounts, and interactions module.
package crm

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"fashionos_backend/internal/crm/handler"
	"fashionos_backend/internal/crm/repository"
	"fashionos_backend/internal/crm/service"
	apphttp "fashionos_backend/internal/http"
	"fashionos_backend/platform/events"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/validator"
)

// Module is the CRM bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the CRM module with all its dependencies.
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
	return "crm"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts CRM routes. Contacts and accounts are back-office
// data, so everything lives under the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	contacts := ctx.Admin.Group("/contacts")
	contacts.POST("", m.handler.CreateContact)
	contacts.GET("", m.handler.ListContacts)
	contacts.GET("/:id", m.handler.GetContact)
	contacts.PATCH("/:id", m.handler.UpdateContact)
	contacts.DELETE("/:id", m.handler.ArchiveContact)
	contacts.GET("/:id/interactions", m.handler.ListInteractions)

	accounts := ctx.Admin.Group("/accounts")
	accounts.POST("", m.handler.CreateAccount)
	accounts.GET("", m.handler.ListAccounts)
	accounts.GET("/:id", m.handler.GetAccount)
	accounts.PATCH("/:id", m.handler.UpdateAccount)

	ctx.Admin.POST("/interactions", m.handler.LogInteraction)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
