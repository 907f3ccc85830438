package authorization

import (
	"log/slog"
	"time"

	"mintmymoment/contexts/identity-access/authorization-service/adapters/allowlist"
	"mintmymoment/contexts/identity-access/authorization-service/adapters/cache"
	httpadapter "mintmymoment/contexts/identity-access/authorization-service/adapters/http"
	"mintmymoment/contexts/identity-access/authorization-service/application"
	"mintmymoment/contexts/identity-access/authorization-service/ports"
)

// Module is the authorization-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Authz   application.Service
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Sessions        ports.SessionSource
	Resolver        ports.RoleResolver
	PermissionCache ports.PermissionCache
	Clock           ports.Clock
	Logger          *slog.Logger
}

// NewModule wires the capability deriver and transport handler using
// explicit ports.
func NewModule(deps Dependencies) Module {
	authz := application.Service{
		Sessions: deps.Sessions,
		Resolver: deps.Resolver,
		Cache:    deps.PermissionCache,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Authz: authz, Logger: deps.Logger},
		Authz:   authz,
	}
}

// NewInMemoryModule builds a development/testing module with the default
// allow lists and an in-process permission cache.
func NewInMemoryModule(logger *slog.Logger, sessions ports.SessionSource) Module {
	return NewModule(Dependencies{
		Sessions: sessions,
		Resolver: allowlist.NewResolver(
			[]string{"rrkah-fqaaa-aaaaa-aaaaq-cai"},
			[]string{"rdmx6-jaaaa-aaaah-qcaiq-cai"},
		),
		PermissionCache: cache.New(5 * time.Minute),
		Logger:          logger,
	})
}
