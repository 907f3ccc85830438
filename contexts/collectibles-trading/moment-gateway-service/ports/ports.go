package ports

import (
	"context"
	"time"

	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/entities"
	"mintmymoment/internal/shared/events"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for receipts, events, and fallback
// mint identifiers.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// MediaUpload is the binary media attached to a mint request.
type MediaUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MintSubmission is the creation request handed to a ledger backend after
// media handling.
type MintSubmission struct {
	Title       string
	Description string
	Sport       string
	PlayerName  string
	EventDate   string
	MediaURL    string
	PriceE8s    uint64
	Creator     string
}

// LedgerBackend is the strategy boundary over token storage. Exactly one
// implementation serves any single gateway call: the remote ledger client
// or the deterministic fixture backend.
type LedgerBackend interface {
	// Name labels the backend in logs, receipts, and trade events.
	Name() string
	// Count is the lightweight availability probe.
	Count(ctx context.Context) (int, error)
	ListAll(ctx context.Context) ([]entities.Moment, error)
	ListByOwner(ctx context.Context, owner string) ([]entities.Moment, error)
	Get(ctx context.Context, id string) (entities.Moment, bool, error)
	Mint(ctx context.Context, submission MintSubmission) (string, error)
	Buy(ctx context.Context, id string, buyer string) error
	Transfer(ctx context.Context, id string, to string) error
}

// ContentStore uploads mint media and metadata documents to a
// content-addressed store.
type ContentStore interface {
	UploadFile(ctx context.Context, filename, contentType string, data []byte) (string, error)
	UploadJSON(ctx context.Context, name string, doc any) (string, error)
}

// TradePublisher emits trade envelopes onto the event bus.
type TradePublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// Receipt is one recorded trade outcome.
type Receipt struct {
	ReceiptID  string
	Operation  string
	Mode       string
	Principal  string
	TokenID    string
	Price      string
	OccurredAt time.Time
}

// ReceiptRepository persists and queries trade receipts.
type ReceiptRepository interface {
	CreateReceipt(ctx context.Context, receipt Receipt) error
	ListRecent(ctx context.Context, limit int) ([]Receipt, error)
}
