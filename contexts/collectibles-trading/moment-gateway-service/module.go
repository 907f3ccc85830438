package momentgateway

import (
	"log/slog"
	"time"

	fixtureadapter "mintmymoment/contexts/collectibles-trading/moment-gateway-service/adapters/fixture"
	httpadapter "mintmymoment/contexts/collectibles-trading/moment-gateway-service/adapters/http"
	memoryadapter "mintmymoment/contexts/collectibles-trading/moment-gateway-service/adapters/memory"
	postgresadapter "mintmymoment/contexts/collectibles-trading/moment-gateway-service/adapters/postgres"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/application"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"
)

// Module is the moment-gateway composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Gateway application.Service
}

// Dependencies captures all runtime ports/config required by NewModule.
// Remote, Media and Publisher may be nil; the gateway degrades to its
// fixture backend and skips uploads/events accordingly.
type Dependencies struct {
	Remote       ports.LedgerBackend
	Fixture      ports.LedgerBackend
	Media        ports.ContentStore
	Publisher    ports.TradePublisher
	Receipts     ports.ReceiptRepository
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	ProbeTimeout time.Duration
	TradeTopic   string
	OnFallback   func(operation string)
	Logger       *slog.Logger
}

// NewModule wires the trading gateway and transport handler using explicit
// ports.
func NewModule(deps Dependencies) Module {
	gateway := application.Service{
		Remote:       deps.Remote,
		Fixture:      deps.Fixture,
		Media:        deps.Media,
		Publisher:    deps.Publisher,
		Receipts:     deps.Receipts,
		Clock:        deps.Clock,
		IDGenerator:  deps.IDGenerator,
		ProbeTimeout: deps.ProbeTimeout,
		TradeTopic:   deps.TradeTopic,
		OnFallback:   deps.OnFallback,
		Logger:       deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{Gateway: gateway, Logger: deps.Logger},
		Gateway: gateway,
	}
}

// NewInMemoryModule wires the gateway against the zero-latency fixture
// backend and an in-memory receipt store. Used by tests and local runs
// without a reachable remote ledger.
func NewInMemoryModule(logger *slog.Logger) Module {
	clock := postgresadapter.SystemClock{}
	ids := postgresadapter.UUIDGenerator{}
	return NewModule(Dependencies{
		Fixture:     fixtureadapter.NewBackend(0, clock, ids),
		Receipts:    memoryadapter.NewReceiptStore(),
		Clock:       clock,
		IDGenerator: ids,
		Logger:      logger,
	})
}
