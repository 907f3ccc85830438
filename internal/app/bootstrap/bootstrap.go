// Package bootstrap is the composition root. Keep construction and wiring
// here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	momentgateway "mintmymoment/contexts/collectibles-trading/moment-gateway-service"
	tradingfixture "mintmymoment/contexts/collectibles-trading/moment-gateway-service/adapters/fixture"
	tradingipfs "mintmymoment/contexts/collectibles-trading/moment-gateway-service/adapters/ipfs"
	tradingmemory "mintmymoment/contexts/collectibles-trading/moment-gateway-service/adapters/memory"
	tradingpostgres "mintmymoment/contexts/collectibles-trading/moment-gateway-service/adapters/postgres"
	tradingremote "mintmymoment/contexts/collectibles-trading/moment-gateway-service/adapters/remote"
	tradingworkers "mintmymoment/contexts/collectibles-trading/moment-gateway-service/application/workers"
	tradingports "mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"
	authorization "mintmymoment/contexts/identity-access/authorization-service"
	authzallowlist "mintmymoment/contexts/identity-access/authorization-service/adapters/allowlist"
	authzcache "mintmymoment/contexts/identity-access/authorization-service/adapters/cache"
	authzports "mintmymoment/contexts/identity-access/authorization-service/ports"
	walletsession "mintmymoment/contexts/identity-access/wallet-session-service"
	walletlocal "mintmymoment/contexts/identity-access/wallet-session-service/adapters/local"
	walletapp "mintmymoment/contexts/identity-access/wallet-session-service/application"
	walletentities "mintmymoment/contexts/identity-access/wallet-session-service/domain/entities"
	"mintmymoment/internal/platform/config"
	"mintmymoment/internal/platform/db"
	"mintmymoment/internal/platform/httpserver"
	"mintmymoment/internal/platform/messaging"
	"mintmymoment/internal/platform/metrics"
	"mintmymoment/internal/shared/events"
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	probe        *tradingworkers.LedgerProbe
	recorder     tradingworkers.ReceiptRecorder
	bus          *messaging.Bus
	tradeTopic   string
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	collectors := metrics.New(cfg.ServiceName)
	bus := messaging.NewBus(logger)

	sessionModule := walletsession.NewModule(walletsession.Dependencies{
		Provider:  walletlocal.NewProvider(cfg.WalletPrincipal, cfg.WalletBalanceE8s, cfg.WalletPreLinked),
		Whitelist: whitelist(cfg),
		Host:      cfg.ICHost,
		Logger:    logger,
	})

	// Adopt a keystore identity that is already linked, as a browser client
	// would restore a prior wallet connection on load.
	_, _ = sessionModule.Sessions.AdoptExisting(context.Background())

	authzModule := authorization.NewModule(authorization.Dependencies{
		Sessions:        sessionSourceAdapter{sessions: sessionModule.Sessions},
		Resolver:        authzallowlist.NewResolver(cfg.AdminPrincipals, cfg.ModeratorPrincipals),
		PermissionCache: authzcache.New(5 * time.Minute),
		Clock:           tradingpostgres.SystemClock{},
		Logger:          logger,
	})

	// Session transitions drop the stale derivation for both the departing
	// and the arriving principal.
	var invalidateMu sync.Mutex
	var lastPrincipal string
	sessionModule.Sessions.Subscribe(func(session walletentities.Session) {
		invalidateMu.Lock()
		previous := lastPrincipal
		lastPrincipal = session.Principal
		invalidateMu.Unlock()

		if previous != "" && previous != session.Principal {
			authzModule.Authz.InvalidateSession(previous)
		}
		if session.Principal != "" {
			authzModule.Authz.InvalidateSession(session.Principal)
		}
	})

	var pg *db.Postgres
	var receipts tradingports.ReceiptRepository
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		repo := tradingpostgres.NewRepository(pg.DB, logger)
		if err := repo.Migrate(); err != nil {
			_ = pg.Close()
			return nil, err
		}
		receipts = repo
	} else {
		receipts = tradingmemory.NewReceiptStore()
	}

	tradingModule := momentgateway.NewModule(momentgateway.Dependencies{
		Remote:       remoteBackend(cfg, logger),
		Fixture:      tradingfixture.NewBackend(cfg.FixtureLatency, tradingpostgres.SystemClock{}, tradingpostgres.UUIDGenerator{}),
		Media:        contentStore(cfg, logger),
		Publisher:    bus,
		Receipts:     receipts,
		Clock:        tradingpostgres.SystemClock{},
		IDGenerator:  tradingpostgres.UUIDGenerator{},
		ProbeTimeout: cfg.ProbeTimeout,
		TradeTopic:   cfg.TradeTopic,
		OnFallback:   collectors.ObserveLedgerFallback,
		Logger:       logger,
	})

	recorder := tradingworkers.ReceiptRecorder{
		Receipts:    receipts,
		IDGenerator: tradingpostgres.UUIDGenerator{},
		Logger:      logger,
	}
	if err := bus.Subscribe(context.Background(), cfg.TradeTopic, "moment-gateway-receipts-cg",
		func(ctx context.Context, event events.Envelope) error {
			collectors.ObserveTradeEvent(event.EventType)
			return recorder.Handle(ctx, event)
		},
	); err != nil {
		return nil, err
	}

	server := httpserver.New(
		sessionModule,
		authzModule,
		tradingModule,
		collectors,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	bus := messaging.NewBus(logger)

	var pg *db.Postgres
	var receipts tradingports.ReceiptRepository
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		repo := tradingpostgres.NewRepository(pg.DB, logger)
		if err := repo.Migrate(); err != nil {
			_ = pg.Close()
			return nil, err
		}
		receipts = repo
	} else {
		receipts = tradingmemory.NewReceiptStore()
	}

	return &WorkerApp{
		postgres: pg,
		probe: &tradingworkers.LedgerProbe{
			Remote: remoteBackend(cfg, logger),
			Logger: logger,
		},
		recorder: tradingworkers.ReceiptRecorder{
			Receipts:    receipts,
			IDGenerator: tradingpostgres.UUIDGenerator{},
			Logger:      logger,
		},
		bus:          bus,
		tradeTopic:   cfg.TradeTopic,
		pollInterval: 5 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.bus.Subscribe(ctx, w.tradeTopic, "moment-gateway-receipts-cg", w.recorder.Handle); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.probe.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// sessionSourceAdapter bridges the wallet session service into the
// authorization deriver's read-only port.
type sessionSourceAdapter struct {
	sessions *walletapp.Service
}

func (a sessionSourceAdapter) Snapshot() authzports.SessionSnapshot {
	session := a.sessions.Current()
	return authzports.SessionSnapshot{
		Connected: session.Connected,
		Principal: session.Principal,
	}
}

func remoteBackend(cfg config.Config, logger *slog.Logger) tradingports.LedgerBackend {
	if cfg.CanisterID == "" {
		return nil
	}
	return tradingremote.NewClient(cfg.ICHost, cfg.CanisterID, cfg.ProbeTimeout, logger)
}

func contentStore(cfg config.Config, logger *slog.Logger) tradingports.ContentStore {
	if cfg.PinataAPIKey == "" || cfg.PinataSecretKey == "" {
		return nil
	}
	return tradingipfs.NewPinata(cfg.PinataAPIKey, cfg.PinataSecretKey, logger)
}

func whitelist(cfg config.Config) []string {
	if cfg.CanisterID == "" {
		return nil
	}
	return []string{cfg.CanisterID}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
