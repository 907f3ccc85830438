package workers

import (
	"context"
	"log/slog"

	application "mintmymoment/contexts/collectibles-trading/moment-gateway-service/application"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"
)

// LedgerProbe periodically checks remote ledger reachability and logs
// availability transitions. It carries no state other than the last
// observed result, so a restart simply re-announces the current state.
type LedgerProbe struct {
	Remote ports.LedgerBackend
	Logger *slog.Logger

	lastKnown *bool
}

// RunOnce performs a single probe. Safe to call on any schedule.
func (p *LedgerProbe) RunOnce(ctx context.Context) error {
	if p.Remote == nil {
		return nil
	}
	logger := application.ResolveLogger(p.Logger)

	count, err := p.Remote.Count(ctx)
	available := err == nil

	if p.lastKnown == nil || *p.lastKnown != available {
		if available {
			logger.Info("remote ledger reachable",
				"event", "ledger_probe_up",
				"module", "collectibles-trading/moment-gateway-service",
				"layer", "application",
				"token_count", count,
			)
		} else {
			logger.Warn("remote ledger unreachable",
				"event", "ledger_probe_down",
				"module", "collectibles-trading/moment-gateway-service",
				"layer", "application",
				"error", err.Error(),
			)
		}
	}
	p.lastKnown = &available
	return nil
}
