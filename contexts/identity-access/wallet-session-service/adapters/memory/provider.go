package memory

import (
	"context"
	"errors"

	"mintmymoment/contexts/identity-access/wallet-session-service/ports"
)

// Provider is a scriptable signing provider for tests and local wiring.
type Provider struct {
	// Principal and AmountE8s are returned on successful connect.
	Principal string
	AmountE8s uint64
	// NoBalances makes connect succeed with an empty balance list.
	NoBalances bool
	// RejectConnect makes RequestConnect fail.
	RejectConnect bool
	// AlreadyConnected makes ExistingConnection report a prior link.
	AlreadyConnected bool
}

func (p *Provider) RequestConnect(_ context.Context, _ []string, _ string) (ports.ConnectResult, error) {
	if p.RejectConnect {
		return ports.ConnectResult{}, errors.New("connect request rejected")
	}
	return p.result(), nil
}

func (p *Provider) ExistingConnection(_ context.Context) (ports.ConnectResult, bool, error) {
	if !p.AlreadyConnected {
		return ports.ConnectResult{}, false, nil
	}
	return p.result(), true, nil
}

func (p *Provider) result() ports.ConnectResult {
	result := ports.ConnectResult{Principal: p.Principal}
	if !p.NoBalances {
		result.Balances = []ports.BalanceEntry{{Symbol: "ICP", Amount: p.AmountE8s}}
	}
	return result
}
