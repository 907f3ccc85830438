package application

import (
	"context"
	"log/slog"
	"sync"

	"mintmymoment/contexts/identity-access/wallet-session-service/domain/entities"
	domainerrors "mintmymoment/contexts/identity-access/wallet-session-service/domain/errors"
	"mintmymoment/contexts/identity-access/wallet-session-service/ports"
	"mintmymoment/internal/shared/ledgerfmt"
)

// Service owns the process-wide session value. It is the only writer;
// everything else reads through Current or a Subscribe callback.
type Service struct {
	provider  ports.SigningProvider
	whitelist []string
	host      string
	logger    *slog.Logger

	mu          sync.RWMutex
	session     entities.Session
	subscribers []func(entities.Session)
}

// Config captures the construction inputs for NewService.
type Config struct {
	Provider LedgerTargetProvider
	Logger   *slog.Logger
}

// LedgerTargetProvider bundles the signing provider with the ledger targets
// passed through on connect. Both values are opaque to session logic.
type LedgerTargetProvider struct {
	Provider  ports.SigningProvider
	Whitelist []string
	Host      string
}

func NewService(cfg Config) *Service {
	return &Service{
		provider:  cfg.Provider.Provider,
		whitelist: cfg.Provider.Whitelist,
		host:      cfg.Provider.Host,
		logger:    ResolveLogger(cfg.Logger),
		session:   entities.Disconnected(),
	}
}

// Current returns a copy of the session value.
func (s *Service) Current() entities.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Subscribe registers a callback observed on every session transition.
// Callbacks run synchronously on the mutating goroutine.
func (s *Service) Subscribe(fn func(entities.Session)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Connect attempts to link against the external signing provider. On failure
// the session is left unchanged and a typed error is returned.
func (s *Service) Connect(ctx context.Context) (entities.Session, error) {
	logger := s.logger
	if s.provider == nil {
		logger.Warn("wallet connect without signing provider",
			"event", "session_connect_no_provider",
			"module", "identity-access/wallet-session-service",
			"layer", "application",
		)
		return s.Current(), domainerrors.ErrProviderUnavailable
	}

	result, err := s.provider.RequestConnect(ctx, s.whitelist, s.host)
	if err != nil {
		logger.Warn("wallet connect rejected",
			"event", "session_connect_rejected",
			"module", "identity-access/wallet-session-service",
			"layer", "application",
			"error", err.Error(),
		)
		return s.Current(), domainerrors.ErrConnectionRejected
	}

	session := s.adopt(result)
	logger.Info("wallet connected",
		"event", "session_connected",
		"module", "identity-access/wallet-session-service",
		"layer", "application",
		"principal", session.Principal,
	)
	return session, nil
}

// AdoptExisting is invoked once at startup. An existing provider connection
// is silently adopted into session state; absence is not an error.
func (s *Service) AdoptExisting(ctx context.Context) (bool, error) {
	if s.provider == nil {
		return false, nil
	}
	result, ok, err := s.provider.ExistingConnection(ctx)
	if err != nil {
		s.logger.Debug("existing connection probe failed",
			"event", "session_adopt_probe_failed",
			"module", "identity-access/wallet-session-service",
			"layer", "application",
			"error", err.Error(),
		)
		return false, nil
	}
	if !ok {
		return false, nil
	}
	session := s.adopt(result)
	s.logger.Info("existing wallet connection adopted",
		"event", "session_adopted",
		"module", "identity-access/wallet-session-service",
		"layer", "application",
		"principal", session.Principal,
	)
	return true, nil
}

// Disconnect unconditionally resets to the initial disconnected state.
// Idempotent.
func (s *Service) Disconnect(ctx context.Context) entities.Session {
	_ = ctx
	s.mu.Lock()
	s.session = entities.Disconnected()
	session := s.session
	subs := append(([]func(entities.Session))(nil), s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(session)
	}
	s.logger.Info("wallet disconnected",
		"event", "session_disconnected",
		"module", "identity-access/wallet-session-service",
		"layer", "application",
	)
	return session
}

func (s *Service) adopt(result ports.ConnectResult) entities.Session {
	s.mu.Lock()
	s.session = entities.Session{
		Connected: true,
		Principal: result.Principal,
		Balance:   formatBalance(result.Balances),
	}
	session := s.session
	subs := append(([]func(entities.Session))(nil), s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(session)
	}
	return session
}

// formatBalance renders the first balance entry in major units, defaulting to
// "0.00" when the provider returns no entries.
func formatBalance(entries []ports.BalanceEntry) string {
	if len(entries) == 0 {
		return "0.00"
	}
	return ledgerfmt.FormatE8s(entries[0].Amount)
}
