package ports

import (
	"context"
	"time"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// BalanceEntry is one ledger balance row in minor units (e8s).
type BalanceEntry struct {
	Symbol string
	Amount uint64
}

// ConnectResult carries the identity and balances resolved by the provider.
type ConnectResult struct {
	Principal string
	Balances  []BalanceEntry
}

// SigningProvider is the external wallet/signing agent boundary.
type SigningProvider interface {
	// RequestConnect asks the provider to link against the given ledger
	// targets. Rejection and provider absence are reported as errors.
	RequestConnect(ctx context.Context, whitelist []string, host string) (ConnectResult, error)
	// ExistingConnection reports an already-linked identity without
	// prompting. The bool is false when no prior connection exists.
	ExistingConnection(ctx context.Context) (ConnectResult, bool, error)
}
