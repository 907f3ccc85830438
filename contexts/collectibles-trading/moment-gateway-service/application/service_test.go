package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/adapters/fixture"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/entities"
	domainerrors "mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/errors"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"
	"mintmymoment/internal/shared/events"
)

const validRecipient = "rrkah-fqaaa-aaaaa-aaaaq-cai"

type frozenClock struct{ at time.Time }

func (c frozenClock) Now() time.Time { return c.at }

type sequenceIDs struct{ next int }

func (g *sequenceIDs) NewID(context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("%08d-0000-0000-0000-000000000000", g.next), nil
}

// stubRemote is a scriptable live ledger.
type stubRemote struct {
	countErr    error
	listErr     error
	mintID      string
	mintErr     error
	buyErr      error
	transferErr error

	probes    int
	mints     []ports.MintSubmission
	buys      int
	transfers int
}

func (s *stubRemote) Name() string { return "live" }

func (s *stubRemote) Count(context.Context) (int, error) {
	s.probes++
	if s.countErr != nil {
		return 0, s.countErr
	}
	return 3, nil
}

func (s *stubRemote) ListAll(context.Context) ([]entities.Moment, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []entities.Moment{{ID: "42", Title: "Live Moment"}}, nil
}

func (s *stubRemote) ListByOwner(context.Context, string) ([]entities.Moment, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return nil, nil
}

func (s *stubRemote) Get(_ context.Context, id string) (entities.Moment, bool, error) {
	if s.listErr != nil {
		return entities.Moment{}, false, s.listErr
	}
	if id == "42" {
		return entities.Moment{ID: "42", Title: "Live Moment"}, true, nil
	}
	return entities.Moment{}, false, nil
}

func (s *stubRemote) Mint(_ context.Context, submission ports.MintSubmission) (string, error) {
	if s.mintErr != nil {
		return "", s.mintErr
	}
	s.mints = append(s.mints, submission)
	if s.mintID == "" {
		return "101", nil
	}
	return s.mintID, nil
}

func (s *stubRemote) Buy(context.Context, string, string) error {
	s.buys++
	return s.buyErr
}

func (s *stubRemote) Transfer(context.Context, string, string) error {
	s.transfers++
	return s.transferErr
}

// scriptedStore fails file or JSON uploads on demand.
type scriptedStore struct {
	fileErr error
	jsonErr error
	files   int
	docs    int
}

func (s *scriptedStore) UploadFile(context.Context, string, string, []byte) (string, error) {
	s.files++
	if s.fileErr != nil {
		return "", s.fileErr
	}
	return "https://gateway.pinata.cloud/ipfs/QmMedia", nil
}

func (s *scriptedStore) UploadJSON(context.Context, string, any) (string, error) {
	s.docs++
	if s.jsonErr != nil {
		return "", s.jsonErr
	}
	return "https://gateway.pinata.cloud/ipfs/QmMeta", nil
}

type capturePublisher struct {
	topics    []string
	envelopes []events.Envelope
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event events.Envelope) error {
	p.topics = append(p.topics, topic)
	p.envelopes = append(p.envelopes, event)
	return nil
}

func newGateway(remote ports.LedgerBackend) (Service, *fixture.Backend) {
	clock := frozenClock{at: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	fixtureBackend := fixture.NewBackend(0, clock, &sequenceIDs{})
	return Service{
		Remote:      remote,
		Fixture:     fixtureBackend,
		Clock:       clock,
		IDGenerator: &sequenceIDs{},
	}, fixtureBackend
}

func validMint() MintRequest {
	return MintRequest{
		Title:       "Championship Winner",
		Description: "Final seconds of the title game",
		Sport:       "Basketball",
		PlayerName:  "Jordan Mitchell",
		EventDate:   "2024-05-28",
		Creator:     validRecipient,
	}
}

func TestProbeFailureServesFixtureSeeds(t *testing.T) {
	remote := &stubRemote{countErr: errors.New("connection refused")}
	service, _ := newGateway(remote)

	fallbacks := 0
	service.OnFallback = func(string) { fallbacks++ }

	moments, err := service.ListAll(context.Background())
	if err != nil {
		t.Fatalf("expected fixture fallback, got error: %v", err)
	}
	if len(moments) != 3 {
		t.Fatalf("expected the three seeded moments, got %d", len(moments))
	}
	for i, want := range []string{"1", "2", "3"} {
		if moments[i].ID != want {
			t.Fatalf("seed %d: expected id %q, got %q", i, want, moments[i].ID)
		}
	}
	if fallbacks != 1 {
		t.Fatalf("expected one observed fallback, got %d", fallbacks)
	}
}

func TestNilRemoteServesFixtures(t *testing.T) {
	service, _ := newGateway(nil)
	moments, err := service.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moments) != 3 {
		t.Fatalf("expected three fixture moments, got %d", len(moments))
	}
}

func TestHealthyProbeServesLiveBackend(t *testing.T) {
	remote := &stubRemote{}
	service, _ := newGateway(remote)

	moments, err := service.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moments) != 1 || moments[0].ID != "42" {
		t.Fatalf("expected the live listing, got %+v", moments)
	}
	if remote.probes != 1 {
		t.Fatalf("expected exactly one probe, got %d", remote.probes)
	}
}

func TestLiveReadFailureDegradesMidCall(t *testing.T) {
	remote := &stubRemote{listErr: errors.New("replica timed out")}
	service, _ := newGateway(remote)

	moments, err := service.ListAll(context.Background())
	if err != nil {
		t.Fatalf("expected fixture degradation, got error: %v", err)
	}
	if len(moments) != 3 {
		t.Fatalf("expected fixture seeds after live failure, got %d", len(moments))
	}
}

func TestMintValidatesBeforeAnyIO(t *testing.T) {
	remote := &stubRemote{}
	store := &scriptedStore{}
	service, _ := newGateway(remote)
	service.Media = store

	request := validMint()
	request.Title = "  "

	_, err := service.Mint(context.Background(), request)
	var validation *domainerrors.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if validation.Field != "title" {
		t.Fatalf("expected the title field to be flagged, got %q", validation.Field)
	}
	if remote.probes != 0 || store.files != 0 || store.docs != 0 {
		t.Fatal("validation failure must short-circuit before probes or uploads")
	}
}

func TestMediaUploadFailureDegradesToPlaceholder(t *testing.T) {
	remote := &stubRemote{mintID: "77"}
	store := &scriptedStore{fileErr: errors.New("pinata 500")}
	service, _ := newGateway(remote)
	service.Media = store

	request := validMint()
	request.Media = &ports.MediaUpload{Filename: "dunk.png", ContentType: "image/png", Data: []byte{1, 2}}

	tokenID, err := service.Mint(context.Background(), request)
	if err != nil {
		t.Fatalf("media failure must not fail the mint: %v", err)
	}
	if tokenID != "77" {
		t.Fatalf("expected the live token id, got %q", tokenID)
	}
	if len(remote.mints) != 1 {
		t.Fatalf("expected one mint submission, got %d", len(remote.mints))
	}
	if remote.mints[0].MediaURL != PlaceholderMediaURL {
		t.Fatalf("expected placeholder media url, got %q", remote.mints[0].MediaURL)
	}
	if remote.mints[0].PriceE8s != NominalMintPriceE8s {
		t.Fatalf("expected nominal mint price, got %d", remote.mints[0].PriceE8s)
	}
	if store.docs != 1 {
		t.Fatal("metadata upload must still run after media degradation")
	}
}

func TestMetadataUploadFailureFailsMint(t *testing.T) {
	remote := &stubRemote{}
	store := &scriptedStore{jsonErr: errors.New("pinata 401")}
	service, _ := newGateway(remote)
	service.Media = store

	if _, err := service.Mint(context.Background(), validMint()); err == nil {
		t.Fatal("expected metadata upload failure to fail the mint")
	}
	if len(remote.mints) != 0 {
		t.Fatal("mint must not be submitted after metadata failure")
	}
}

func TestFallbackMintSkipsUploadsAndPersists(t *testing.T) {
	store := &scriptedStore{}
	service, fixtureBackend := newGateway(nil)
	service.Media = store

	tokenID, err := service.Mint(context.Background(), validMint())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.files != 0 || store.docs != 0 {
		t.Fatal("fallback mint must not touch the content store")
	}

	moment, found, err := fixtureBackend.Get(context.Background(), tokenID)
	if err != nil || !found {
		t.Fatalf("fallback mint must be readable afterwards: found=%v err=%v", found, err)
	}
	if moment.Price != "2.50" {
		t.Fatalf("expected normalized nominal price, got %q", moment.Price)
	}

	moments, _ := service.ListAll(context.Background())
	if len(moments) != 4 {
		t.Fatalf("expected seeds plus the fallback mint, got %d", len(moments))
	}
}

func TestFallbackBuySimulatesWithoutMutation(t *testing.T) {
	service, _ := newGateway(nil)

	before, _ := service.ListAll(context.Background())
	err := service.Buy(context.Background(), BuyRequest{TokenID: "1", Price: "2.5", Buyer: validRecipient})
	if err != nil {
		t.Fatalf("fixture buy must simulate success: %v", err)
	}
	after, _ := service.ListAll(context.Background())
	if len(after) != len(before) {
		t.Fatalf("fixture buy must not change the listing: %d -> %d", len(before), len(after))
	}
	if after[0].Owner != before[0].Owner {
		t.Fatal("fixture buy must not reassign ownership")
	}
}

func TestRemoteRejectionSurfacesVerbatim(t *testing.T) {
	remote := &stubRemote{buyErr: &domainerrors.RemoteRejectedError{Reason: "Insufficient funds"}}
	service, _ := newGateway(remote)

	err := service.Buy(context.Background(), BuyRequest{TokenID: "42", Price: "2.50", Buyer: validRecipient})
	var rejected *domainerrors.RemoteRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected a remote rejection, got %v", err)
	}
	if rejected.Reason != "Insufficient funds" {
		t.Fatalf("rejection reason must pass through verbatim, got %q", rejected.Reason)
	}
}

func TestTransferRejectsInvalidRecipient(t *testing.T) {
	remote := &stubRemote{}
	service, _ := newGateway(remote)

	err := service.Transfer(context.Background(), TransferRequest{TokenID: "42", To: "not-a-principal", From: validRecipient})
	var validation *domainerrors.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if validation.Field != "to" {
		t.Fatalf("expected the recipient field to be flagged, got %q", validation.Field)
	}
	if remote.probes != 0 || remote.transfers != 0 {
		t.Fatal("invalid recipient must short-circuit before the backend")
	}
}

func TestTransferSubmitsCanonicalRecipient(t *testing.T) {
	remote := &stubRemote{}
	service, _ := newGateway(remote)

	err := service.Transfer(context.Background(), TransferRequest{
		TokenID: "42",
		To:      "  RRKAH-FQAAA-AAAAA-AAAAQ-CAI  ",
		From:    validRecipient,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remote.transfers != 1 {
		t.Fatalf("expected one transfer submission, got %d", remote.transfers)
	}
}

func TestGetUnknownMomentNotFound(t *testing.T) {
	service, _ := newGateway(nil)

	_, err := service.Get(context.Background(), "no-such-token")
	if !errors.Is(err, domainerrors.ErrMomentNotFound) {
		t.Fatalf("expected ErrMomentNotFound, got %v", err)
	}
}

func TestTradeEventsCarryModeAndPrice(t *testing.T) {
	publisher := &capturePublisher{}
	service, _ := newGateway(nil)
	service.Publisher = publisher
	service.TradeTopic = "trading.trades"

	if err := service.Buy(context.Background(), BuyRequest{TokenID: "2", Price: "3.2", Buyer: validRecipient}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(publisher.envelopes) != 1 {
		t.Fatalf("expected one trade event, got %d", len(publisher.envelopes))
	}
	envelope := publisher.envelopes[0]
	if envelope.EventType != events.EventTypeMomentPurchased {
		t.Fatalf("unexpected event type %q", envelope.EventType)
	}
	payload, ok := envelope.Payload.(events.TradePayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", envelope.Payload)
	}
	if payload.Mode != "fixture" {
		t.Fatalf("expected fixture mode in the payload, got %q", payload.Mode)
	}
	if payload.Price != "3.20" {
		t.Fatalf("expected normalized price, got %q", payload.Price)
	}
	if publisher.topics[0] != "trading.trades" {
		t.Fatalf("unexpected topic %q", publisher.topics[0])
	}
}
