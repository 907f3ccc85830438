package local

import (
	"context"
	"strings"

	domainerrors "mintmymoment/contexts/identity-access/wallet-session-service/domain/errors"
	"mintmymoment/contexts/identity-access/wallet-session-service/ports"
)

// Provider is a keystore-style signing provider backed by a locally
// configured identity. It stands in for a browser wallet extension in
// server-side and demo deployments: connect resolves to the configured
// principal, or fails when none is configured.
type Provider struct {
	principal string
	amountE8s uint64
	linked    bool
}

// NewProvider builds a provider from configuration. An empty principal means
// no local identity is installed and every connect attempt fails.
func NewProvider(principal string, amountE8s uint64, preLinked bool) *Provider {
	return &Provider{
		principal: strings.TrimSpace(principal),
		amountE8s: amountE8s,
		linked:    preLinked,
	}
}

func (p *Provider) RequestConnect(_ context.Context, _ []string, _ string) (ports.ConnectResult, error) {
	if p.principal == "" {
		return ports.ConnectResult{}, domainerrors.ErrProviderUnavailable
	}
	p.linked = true
	return p.result(), nil
}

func (p *Provider) ExistingConnection(_ context.Context) (ports.ConnectResult, bool, error) {
	if p.principal == "" || !p.linked {
		return ports.ConnectResult{}, false, nil
	}
	return p.result(), true, nil
}

func (p *Provider) result() ports.ConnectResult {
	return ports.ConnectResult{
		Principal: p.principal,
		Balances:  []ports.BalanceEntry{{Symbol: "ICP", Amount: p.amountE8s}},
	}
}
