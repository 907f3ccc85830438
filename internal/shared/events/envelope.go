package events

import "time"

// Envelope is the shared event shape used across MintMyMoment services.
// Align fields with the repository canonical event contract.
type Envelope struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SourceService  string    `json:"source_service"`
	OccurredAtUTC  time.Time `json:"occurred_at_utc"`
	CorrelationID  string    `json:"correlation_id"`
	EntityType     string    `json:"entity_type"`
	EntityID       string    `json:"entity_id"`
	PayloadVersion int       `json:"payload_version"`
	Payload        any       `json:"payload"`
}

// Canonical trade event types emitted by the moment gateway.
const (
	EventTypeMomentMinted      = "trading.moment_minted"
	EventTypeMomentPurchased   = "trading.moment_purchased"
	EventTypeMomentTransferred = "trading.moment_transferred"
)

// TradePayload is the payload carried by trade envelopes.
// Mode records whether the live ledger or the fixture backend served the call.
type TradePayload struct {
	Operation string `json:"operation"`
	Mode      string `json:"mode"`
	Principal string `json:"principal"`
	TokenID   string `json:"token_id"`
	Price     string `json:"price"`
}
