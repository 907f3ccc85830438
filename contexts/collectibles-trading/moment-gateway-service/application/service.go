package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/entities"
	domainerrors "mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/errors"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/valueobjects"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"
	"mintmymoment/internal/shared/events"
	"mintmymoment/internal/shared/ledgerfmt"
)

// NominalMintPriceE8s is the fixed listing price submitted with every mint
// (2.50 in major units).
const NominalMintPriceE8s uint64 = 250_000_000

// PlaceholderMediaURL substitutes for media whose upload failed.
const PlaceholderMediaURL = "/placeholder.svg?height=300&width=300"

const sourceService = "collectibles-trading/moment-gateway-service"

// MintRequest is the caller-facing mint input. Creator is supplied by the
// transport layer from the authenticated session; the gateway itself does
// not consult authorization.
type MintRequest struct {
	Title       string
	Description string
	Sport       string
	PlayerName  string
	EventDate   string
	Creator     string
	Media       *ports.MediaUpload
}

// BuyRequest is the caller-facing purchase input.
type BuyRequest struct {
	TokenID string
	Price   string
	Buyer   string
}

// TransferRequest is the caller-facing transfer input.
type TransferRequest struct {
	TokenID string
	To      string
	From    string
}

// Service routes every operation through probe-and-select: a lightweight
// count query against the remote backend decides live vs fixture for that
// one call. No mode flag is held between calls.
type Service struct {
	Remote       ports.LedgerBackend
	Fixture      ports.LedgerBackend
	Media        ports.ContentStore
	Publisher    ports.TradePublisher
	Receipts     ports.ReceiptRepository
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	ProbeTimeout time.Duration
	TradeTopic   string
	// OnFallback observes fixture routing per operation (metrics hook).
	OnFallback func(operation string)
	Logger     *slog.Logger
}

// ListAll returns every token visible through the selected backend.
func (s Service) ListAll(ctx context.Context) ([]entities.Moment, error) {
	backend, live := s.selectBackend(ctx, "list_all")
	moments, err := backend.ListAll(ctx)
	if err != nil && live {
		return s.degradeRead(ctx, "list_all", err).ListAll(ctx)
	}
	return moments, err
}

// ListByOwner returns tokens owned by the exact principal.
func (s Service) ListByOwner(ctx context.Context, owner string) ([]entities.Moment, error) {
	owner = valueobjects.CanonicalText(owner)
	if owner == "" {
		return nil, &domainerrors.ValidationError{Field: "owner", Reason: "principal is required"}
	}
	backend, live := s.selectBackend(ctx, "list_by_owner")
	moments, err := backend.ListByOwner(ctx, owner)
	if err != nil && live {
		return s.degradeRead(ctx, "list_by_owner", err).ListByOwner(ctx, owner)
	}
	return moments, err
}

// Get fetches a single token.
func (s Service) Get(ctx context.Context, id string) (entities.Moment, error) {
	if strings.TrimSpace(id) == "" {
		return entities.Moment{}, &domainerrors.ValidationError{Field: "id", Reason: "token id is required"}
	}
	backend, live := s.selectBackend(ctx, "get")
	moment, found, err := backend.Get(ctx, id)
	if err != nil && live {
		moment, found, err = s.degradeRead(ctx, "get", err).Get(ctx, id)
	}
	if err != nil {
		return entities.Moment{}, err
	}
	if !found {
		return entities.Moment{}, domainerrors.ErrMomentNotFound
	}
	return moment, nil
}

// Mint validates locally, handles media, and submits a creation request.
// Media upload failure is degraded to a placeholder, never fatal.
func (s Service) Mint(ctx context.Context, request MintRequest) (string, error) {
	if err := validateMint(request); err != nil {
		return "", err
	}

	logger := ResolveLogger(s.Logger)
	backend, live := s.selectBackend(ctx, "mint")

	mediaURL := ""
	if live {
		mediaURL = s.uploadMedia(ctx, request)
		if err := s.uploadMetadata(ctx, request, mediaURL); err != nil {
			return "", err
		}
	}

	submission := ports.MintSubmission{
		Title:       request.Title,
		Description: request.Description,
		Sport:       request.Sport,
		PlayerName:  request.PlayerName,
		EventDate:   request.EventDate,
		MediaURL:    mediaURL,
		PriceE8s:    NominalMintPriceE8s,
		Creator:     valueobjects.CanonicalText(request.Creator),
	}

	tokenID, err := backend.Mint(ctx, submission)
	if err != nil {
		return "", err
	}

	logger.Info("moment minted",
		"event", "gateway_mint_completed",
		"module", sourceService,
		"layer", "application",
		"mode", backend.Name(),
		"token_id", tokenID,
	)
	s.publishTrade(ctx, events.EventTypeMomentMinted, events.TradePayload{
		Operation: "mint",
		Mode:      backend.Name(),
		Principal: submission.Creator,
		TokenID:   tokenID,
		Price:     ledgerfmt.FormatE8s(submission.PriceE8s),
	})
	return tokenID, nil
}

// Buy submits a purchase request. Remote rejections surface verbatim; the
// fixture backend simulates success without mutating anything.
func (s Service) Buy(ctx context.Context, request BuyRequest) error {
	if strings.TrimSpace(request.TokenID) == "" {
		return &domainerrors.ValidationError{Field: "token_id", Reason: "token id is required"}
	}
	backend, _ := s.selectBackend(ctx, "buy")
	buyer := valueobjects.CanonicalText(request.Buyer)
	if err := backend.Buy(ctx, request.TokenID, buyer); err != nil {
		return err
	}
	s.publishTrade(ctx, events.EventTypeMomentPurchased, events.TradePayload{
		Operation: "buy",
		Mode:      backend.Name(),
		Principal: buyer,
		TokenID:   request.TokenID,
		Price:     ledgerfmt.NormalizePrice(request.Price),
	})
	return nil
}

// Transfer submits an ownership transfer, symmetric to Buy.
func (s Service) Transfer(ctx context.Context, request TransferRequest) error {
	if strings.TrimSpace(request.TokenID) == "" {
		return &domainerrors.ValidationError{Field: "token_id", Reason: "token id is required"}
	}
	to := valueobjects.CanonicalText(request.To)
	if !valueobjects.IsValidPrincipal(to) {
		return &domainerrors.ValidationError{Field: "to", Reason: "recipient is not a valid principal"}
	}
	backend, _ := s.selectBackend(ctx, "transfer")
	if err := backend.Transfer(ctx, request.TokenID, to); err != nil {
		return err
	}
	s.publishTrade(ctx, events.EventTypeMomentTransferred, events.TradePayload{
		Operation: "transfer",
		Mode:      backend.Name(),
		Principal: valueobjects.CanonicalText(request.From),
		TokenID:   request.TokenID,
	})
	return nil
}

// ListReceipts exposes recorded trade outcomes.
func (s Service) ListReceipts(ctx context.Context, limit int) ([]ports.Receipt, error) {
	if s.Receipts == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	return s.Receipts.ListRecent(ctx, limit)
}

// selectBackend probes the remote ledger and returns the backend serving
// this one call. Probe failure routes to the fixture backend and is never
// surfaced as an error.
func (s Service) selectBackend(ctx context.Context, operation string) (ports.LedgerBackend, bool) {
	if s.Remote == nil {
		s.observeFallback(operation, domainerrors.ErrRemoteUnavailable)
		return s.Fixture, false
	}

	probeCtx := ctx
	if s.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, s.ProbeTimeout)
		defer cancel()
	}
	if _, err := s.Remote.Count(probeCtx); err != nil {
		s.observeFallback(operation, err)
		return s.Fixture, false
	}
	return s.Remote, true
}

// degradeRead falls back to the fixture backend after a live read failed
// mid-call, matching probe-then-outage behavior for queries.
func (s Service) degradeRead(_ context.Context, operation string, err error) ports.LedgerBackend {
	s.observeFallback(operation, err)
	return s.Fixture
}

func (s Service) observeFallback(operation string, err error) {
	ResolveLogger(s.Logger).Debug("remote ledger unreachable, serving fixtures",
		"event", "gateway_fallback_selected",
		"module", sourceService,
		"layer", "application",
		"operation", operation,
		"error", err.Error(),
	)
	if s.OnFallback != nil {
		s.OnFallback(operation)
	}
}

func (s Service) uploadMedia(ctx context.Context, request MintRequest) string {
	if request.Media == nil {
		return ""
	}
	if s.Media == nil {
		return PlaceholderMediaURL
	}
	url, err := s.Media.UploadFile(ctx, request.Media.Filename, request.Media.ContentType, request.Media.Data)
	if err != nil {
		ResolveLogger(s.Logger).Warn("media upload degraded to placeholder",
			"event", "gateway_upload_degraded",
			"module", sourceService,
			"layer", "application",
			"filename", request.Media.Filename,
			"error", err.Error(),
		)
		return PlaceholderMediaURL
	}
	return url
}

func (s Service) uploadMetadata(ctx context.Context, request MintRequest, mediaURL string) error {
	if s.Media == nil {
		return nil
	}
	doc := metadataDocument{
		Title:       request.Title,
		Description: request.Description,
		Sport:       request.Sport,
		PlayerName:  request.PlayerName,
		EventDate:   request.EventDate,
		Image:       mediaURL,
		Attributes: []metadataAttribute{
			{TraitType: "Sport", Value: request.Sport},
			{TraitType: "Player", Value: request.PlayerName},
			{TraitType: "Event Date", Value: request.EventDate},
		},
	}
	metadataURL, err := s.Media.UploadJSON(ctx, "moment-metadata", doc)
	if err != nil {
		return fmt.Errorf("upload metadata: %w", err)
	}
	ResolveLogger(s.Logger).Debug("metadata document pinned",
		"event", "gateway_metadata_pinned",
		"module", sourceService,
		"layer", "application",
		"metadata_url", metadataURL,
	)
	return nil
}

func (s Service) publishTrade(ctx context.Context, eventType string, payload events.TradePayload) {
	if s.Publisher == nil {
		return
	}
	eventID := ""
	if s.IDGenerator != nil {
		eventID, _ = s.IDGenerator.NewID(ctx)
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  sourceService,
		OccurredAtUTC:  s.now(),
		EntityType:     "moment",
		EntityID:       payload.TokenID,
		PayloadVersion: 1,
		Payload:        payload,
	}
	if err := s.Publisher.Publish(ctx, s.TradeTopic, envelope); err != nil {
		ResolveLogger(s.Logger).Warn("trade event publish failed",
			"event", "gateway_trade_publish_failed",
			"module", sourceService,
			"layer", "application",
			"event_type", eventType,
			"token_id", payload.TokenID,
			"error", err.Error(),
		)
	}
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func validateMint(request MintRequest) error {
	required := []struct {
		field string
		value string
	}{
		{"title", request.Title},
		{"description", request.Description},
		{"sport", request.Sport},
		{"player_name", request.PlayerName},
		{"event_date", request.EventDate},
	}
	for _, item := range required {
		if strings.TrimSpace(item.value) == "" {
			return &domainerrors.ValidationError{Field: item.field, Reason: "value is required"}
		}
	}
	return nil
}

type metadataAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

type metadataDocument struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Sport       string              `json:"sport"`
	PlayerName  string              `json:"playerName"`
	EventDate   string              `json:"eventDate"`
	Image       string              `json:"image"`
	Attributes  []metadataAttribute `json:"attributes"`
}
