package walletsession

import (
	"log/slog"

	httpadapter "mintmymoment/contexts/identity-access/wallet-session-service/adapters/http"
	"mintmymoment/contexts/identity-access/wallet-session-service/adapters/memory"
	"mintmymoment/contexts/identity-access/wallet-session-service/application"
	"mintmymoment/contexts/identity-access/wallet-session-service/ports"
)

// Module is the wallet-session-service composition root exposed to runtime wiring.
type Module struct {
	Handler  httpadapter.Handler
	Sessions *application.Service
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Provider  ports.SigningProvider
	Whitelist []string
	Host      string
	Logger    *slog.Logger
}

// NewModule wires the session state owner and its transport handler.
func NewModule(deps Dependencies) Module {
	sessions := application.NewService(application.Config{
		Provider: application.LedgerTargetProvider{
			Provider:  deps.Provider,
			Whitelist: deps.Whitelist,
			Host:      deps.Host,
		},
		Logger: deps.Logger,
	})
	return Module{
		Handler:  httpadapter.Handler{Sessions: sessions, Logger: deps.Logger},
		Sessions: sessions,
	}
}

// NewInMemoryModule builds a development/testing module with a scriptable
// signing provider.
func NewInMemoryModule(logger *slog.Logger, provider *memory.Provider) Module {
	if provider == nil {
		provider = &memory.Provider{Principal: "renrk-eyaaa-aaaaa-aaada-cai", AmountE8s: 500_000_000}
	}
	return NewModule(Dependencies{
		Provider: provider,
		Logger:   logger,
	})
}
