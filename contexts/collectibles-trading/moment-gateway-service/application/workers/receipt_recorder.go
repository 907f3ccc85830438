package workers

import (
	"context"
	"log/slog"

	application "mintmymoment/contexts/collectibles-trading/moment-gateway-service/application"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"
	"mintmymoment/internal/shared/events"
)

// ReceiptRecorder consumes trade envelopes and persists receipt rows.
type ReceiptRecorder struct {
	Receipts    ports.ReceiptRepository
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Handle maps one trade envelope to a receipt. Unrecognized payloads are
// skipped, not failed, so one malformed event cannot wedge the consumer.
func (r ReceiptRecorder) Handle(ctx context.Context, event events.Envelope) error {
	logger := application.ResolveLogger(r.Logger)

	payload, ok := event.Payload.(events.TradePayload)
	if !ok {
		logger.Warn("skipping non-trade payload",
			"event", "receipt_recorder_payload_skipped",
			"module", "collectibles-trading/moment-gateway-service",
			"layer", "application",
			"event_id", event.EventID,
			"event_type", event.EventType,
		)
		return nil
	}

	receiptID := event.EventID
	if receiptID == "" && r.IDGenerator != nil {
		receiptID, _ = r.IDGenerator.NewID(ctx)
	}

	receipt := ports.Receipt{
		ReceiptID:  receiptID,
		Operation:  payload.Operation,
		Mode:       payload.Mode,
		Principal:  payload.Principal,
		TokenID:    payload.TokenID,
		Price:      payload.Price,
		OccurredAt: event.OccurredAtUTC,
	}
	if err := r.Receipts.CreateReceipt(ctx, receipt); err != nil {
		logger.Error("receipt persistence failed",
			"event", "receipt_recorder_persist_failed",
			"module", "collectibles-trading/moment-gateway-service",
			"layer", "application",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}

	logger.Debug("trade receipt recorded",
		"event", "receipt_recorded",
		"module", "collectibles-trading/moment-gateway-service",
		"layer", "application",
		"operation", payload.Operation,
		"mode", payload.Mode,
		"token_id", payload.TokenID,
	)
	return nil
}
