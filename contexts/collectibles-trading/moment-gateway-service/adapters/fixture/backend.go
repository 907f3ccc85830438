package fixture

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/entities"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"
	"mintmymoment/internal/shared/ledgerfmt"
)

// Backend is the deterministic in-memory ledger used while the remote
// ledger is unreachable. Reads serve the seeded demo set plus an overlay of
// fallback-minted tokens; Buy and Transfer simulate success without
// mutating the seeds.
type Backend struct {
	Latency     time.Duration
	Clock       ports.Clock
	IDGenerator ports.IDGenerator

	mu      sync.RWMutex
	seeds   []entities.Moment
	overlay []entities.Moment
}

func NewBackend(latency time.Duration, clock ports.Clock, ids ports.IDGenerator) *Backend {
	return &Backend{
		Latency:     latency,
		Clock:       clock,
		IDGenerator: ids,
		seeds:       seedMoments(),
	}
}

func (b *Backend) Name() string { return "fixture" }

func (b *Backend) Count(_ context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.seeds) + len(b.overlay), nil
}

func (b *Backend) ListAll(_ context.Context) ([]entities.Moment, error) {
	b.simulateDelay()
	b.mu.RLock()
	defer b.mu.RUnlock()
	moments := make([]entities.Moment, 0, len(b.seeds)+len(b.overlay))
	moments = append(moments, b.seeds...)
	moments = append(moments, b.overlay...)
	return moments, nil
}

func (b *Backend) ListByOwner(ctx context.Context, owner string) ([]entities.Moment, error) {
	all, _ := b.ListAll(ctx)
	owned := make([]entities.Moment, 0)
	for _, moment := range all {
		if moment.Owner == owner {
			owned = append(owned, moment)
		}
	}
	return owned, nil
}

func (b *Backend) Get(_ context.Context, id string) (entities.Moment, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, moment := range b.seeds {
		if moment.ID == id {
			return moment, true, nil
		}
	}
	for _, moment := range b.overlay {
		if moment.ID == id {
			return moment, true, nil
		}
	}
	return entities.Moment{}, false, nil
}

// Mint synthesizes a locally-unique id and keeps the token in the overlay
// so subsequent fallback reads include it.
func (b *Backend) Mint(ctx context.Context, submission ports.MintSubmission) (string, error) {
	b.simulateDelay()
	now := b.now()

	suffix := ""
	if b.IDGenerator != nil {
		if generated, err := b.IDGenerator.NewID(ctx); err == nil {
			suffix = "_" + strings.SplitN(generated, "-", 2)[0]
		}
	}
	id := fmt.Sprintf("local_%d%s", now.UnixMilli(), suffix)

	mediaURL := submission.MediaURL
	if mediaURL == "" {
		mediaURL = "/placeholder.svg?height=300&width=300"
	}

	b.mu.Lock()
	b.overlay = append(b.overlay, entities.Moment{
		ID:          id,
		Title:       submission.Title,
		Description: submission.Description,
		Sport:       submission.Sport,
		PlayerName:  submission.PlayerName,
		EventDate:   submission.EventDate,
		MediaURL:    mediaURL,
		Owner:       submission.Creator,
		Creator:     submission.Creator,
		Price:       ledgerfmt.FormatE8s(submission.PriceE8s),
		CreatedAt:   now,
	})
	b.mu.Unlock()
	return id, nil
}

func (b *Backend) Buy(_ context.Context, _ string, _ string) error {
	b.simulateDelay()
	return nil
}

func (b *Backend) Transfer(_ context.Context, _ string, _ string) error {
	b.simulateDelay()
	return nil
}

func (b *Backend) simulateDelay() {
	if b.Latency > 0 {
		time.Sleep(b.Latency)
	}
}

func (b *Backend) now() time.Time {
	if b.Clock != nil {
		return b.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// seedMoments is the fixed demo token set.
func seedMoments() []entities.Moment {
	return []entities.Moment{
		{
			ID:          "1",
			Title:       "LeBron's Championship Dunk",
			Description: "The iconic championship-winning dunk that sealed the Lakers' victory",
			Sport:       "Basketball",
			PlayerName:  "LeBron James",
			EventDate:   "2020-10-11",
			MediaURL:    "https://images.unsplash.com/photo-1546519638-68e109498ffc?w=400&h=400&fit=crop&crop=center",
			Owner:       "rrkah-fqaaa-aaaaa-aaaaq-cai",
			Creator:     "rrkah-fqaaa-aaaaa-aaaaq-cai",
			Price:       "2.50",
			CreatedAt:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			Title:       "Messi's World Cup Goal",
			Description: "The goal that completed Messi's legacy",
			Sport:       "Soccer",
			PlayerName:  "Lionel Messi",
			EventDate:   "2022-12-18",
			MediaURL:    "https://images.unsplash.com/photo-1574629810360-7efbbe195018?w=400&h=400&fit=crop&crop=center",
			Owner:       "rdmx6-jaaaa-aaaah-qcaiq-cai",
			Creator:     "rdmx6-jaaaa-aaaah-qcaiq-cai",
			Price:       "3.20",
			CreatedAt:   time.Date(2024, 1, 10, 14, 20, 0, 0, time.UTC),
		},
		{
			ID:          "3",
			Title:       "Nadal's French Open Serve",
			Description: "The serve that secured Nadal's 14th French Open title",
			Sport:       "Tennis",
			PlayerName:  "Rafael Nadal",
			EventDate:   "2022-06-05",
			MediaURL:    "https://images.unsplash.com/photo-1622279457486-62dcc4a431d6?w=400&h=400&fit=crop&crop=center",
			Owner:       "rno2w-sqaaa-aaaah-qcaiq-cai",
			Creator:     "rno2w-sqaaa-aaaah-qcaiq-cai",
			Price:       "1.80",
			CreatedAt:   time.Date(2024, 1, 8, 16, 45, 0, 0, time.UTC),
		},
	}
}
