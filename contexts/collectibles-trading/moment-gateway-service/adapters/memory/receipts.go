package memory

import (
	"context"
	"sort"
	"sync"

	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"
)

// ReceiptStore is an in-memory receipt repository for tests and wiring
// without a database.
type ReceiptStore struct {
	mu       sync.RWMutex
	receipts []ports.Receipt
}

func NewReceiptStore() *ReceiptStore {
	return &ReceiptStore{}
}

func (s *ReceiptStore) CreateReceipt(_ context.Context, receipt ports.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, receipt)
	return nil
}

func (s *ReceiptStore) ListRecent(_ context.Context, limit int) ([]ports.Receipt, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	receipts := append([]ports.Receipt(nil), s.receipts...)
	sort.SliceStable(receipts, func(i, j int) bool {
		return receipts[i].OccurredAt.After(receipts[j].OccurredAt)
	})
	if len(receipts) > limit {
		receipts = receipts[:limit]
	}
	return receipts, nil
}
