package accesscontrol

import (
	"fashionos_backend/internal/accesscontrol/repository"
	apphttp "fashionos_backend/internal/http"
	"fashionos_backend/platform/httpkit"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the access control resolver and its HTTP surface.
type Module struct {
	resolver *Resolver
	handler  *Handler
}

// NewModule wires the resolver over the default policy set and the
// database-backed ownership strategies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	policies := DefaultPolicySet()
	resolver := NewResolver(policies, DefaultOwnership(repo), log)

	return &Module{
		resolver: resolver,
		handler:  NewHandler(resolver, policies, val),
	}
}

// Resolver exposes the resolver for other modules and the router guard.
func (m *Module) Resolver() *Resolver {
	return m.resolver
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "accesscontrol"
}

// RegisterRoutes mounts the access control endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	access := ctx.V1.Group("/access")
	access.Use(httpkit.AuthOptional(ctx.Config))
	access.POST("/can", m.handler.Can)

	ctx.Protected.GET("/access/permissions", m.handler.Permissions)
}
