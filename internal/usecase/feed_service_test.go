package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"GeoPulse/internal/domain/models"
	drepo "GeoPulse/internal/domain/repository"
	internalrepo "GeoPulse/internal/repository"
	"GeoPulse/internal/services/headlines"
	"GeoPulse/internal/services/signal"
	"GeoPulse/internal/services/simulation"
	"GeoPulse/pkg/logger"
)

type stubMetrics struct {
	mu     sync.Mutex
	errors map[string]int
	feeds  map[string]int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{errors: map[string]int{}, feeds: map[string]int{}}
}

func (m *stubMetrics) RecordFeedGenerated(region string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feeds[region]++
}

func (m *stubMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *stubMetrics) RecordDivergence(string, float64) {}
func (m *stubMetrics) RecordLatency(string, float64)    {}

type stubPublisher struct {
	mu     sync.Mutex
	feeds  []models.FeedEvent
	alerts []models.AlertEvent
}

func (p *stubPublisher) PublishFeed(_ context.Context, e models.FeedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.feeds = append(p.feeds, e)
	return nil
}

func (p *stubPublisher) PublishAlert(_ context.Context, e models.AlertEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, e)
	return nil
}

func (p *stubPublisher) Close() error { return nil }

type stubMarket struct {
	snap *models.MarketSnapshot
	err  error
}

func (m *stubMarket) Snapshot(context.Context, string) (*models.MarketSnapshot, error) {
	return m.snap, m.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func feedProfiles() []models.RegionProfile {
	mk := func(id, name string) models.RegionProfile {
		return models.RegionProfile{
			ID:                id,
			Name:              name,
			ProxyType:         "ports",
			PhysBaseline:      0.1,
			PhysVolatility:    0.08,
			WeekendMultiplier: 0.7,
			Persistence:       0.6,
			VolumeBaseline:    120,
			SentimentBias:     0.05,
			HypeTendency:      0.7,
			DiversityBaseline: 0.4,
			RegimeWeights: map[models.RegimeType]float64{
				models.RegimeHypePump:   0.5,
				models.RegimeRealGrowth: 0.5,
			},
			MarketSymbol: "FXI",
			MarketName:   "iShares China Large-Cap ETF",
		}
	}
	return []models.RegionProfile{
		mk("shanghai_port", "Shanghai, China"),
		mk("la_port", "Port of Los Angeles"),
	}
}

func newTestFeedService(t *testing.T, market *stubMarket, pub *stubPublisher) (*FeedService, *stubMetrics) {
	t.Helper()
	store, err := internalrepo.NewConfigProfileStore(feedProfiles())
	if err != nil {
		t.Fatalf("profile store: %v", err)
	}
	m := newStubMetrics()
	proc := NewEventProcessor(nil, pub, m, "log")
	engine := signal.NewEngine(signal.DefaultTuning())
	svc := NewFeedService(store, headlines.New(), market, engine, proc, m, simulation.DefaultTuning(), testLogger(t))
	return svc, m
}

func fixedAnchor() time.Time {
	return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func TestGetFeedDeterministic(t *testing.T) {
	svc, _ := newTestFeedService(t, &stubMarket{err: fmt.Errorf("down")}, &stubPublisher{})
	ctx := context.Background()
	params := GetFeedParams{RegionID: "shanghai_port", Days: 30, AnchorDate: fixedAnchor()}

	f1, err := svc.GetFeed(ctx, params)
	if err != nil {
		t.Fatalf("get feed 1: %v", err)
	}
	f2, err := svc.GetFeed(ctx, params)
	if err != nil {
		t.Fatalf("get feed 2: %v", err)
	}

	if f1.Divergence != f2.Divergence {
		t.Fatalf("divergence differs: %v vs %v", f1.Divergence, f2.Divergence)
	}
	if len(f1.Days) != 30 || len(f2.Days) != 30 {
		t.Fatalf("expected 30 days")
	}
	for i := range f1.Days {
		if f1.Days[i].DivergenceScore != f2.Days[i].DivergenceScore {
			t.Fatalf("day %d divergence differs", i)
		}
		if f1.Days[i].PhysicalScore != f2.Days[i].PhysicalScore {
			t.Fatalf("day %d physical differs", i)
		}
	}
	if len(f1.Alerts) == 0 {
		t.Fatalf("alerts must never be empty")
	}
}

func TestGetFeedValidation(t *testing.T) {
	svc, m := newTestFeedService(t, &stubMarket{}, &stubPublisher{})
	ctx := context.Background()

	if _, err := svc.GetFeed(ctx, GetFeedParams{RegionID: ""}); err == nil {
		t.Fatalf("empty region should error")
	}
	if _, err := svc.GetFeed(ctx, GetFeedParams{RegionID: "shanghai_port", Days: -1}); err == nil {
		t.Fatalf("negative days should error")
	}
	if _, err := svc.GetFeed(ctx, GetFeedParams{RegionID: "atlantis", Days: 30}); err == nil {
		t.Fatalf("unknown region should error")
	}
	if m.errors["feed_unknown_region"] != 1 {
		t.Fatalf("expected unknown region metric, got %v", m.errors)
	}
}

func TestGetFeedWindowNormalized(t *testing.T) {
	svc, _ := newTestFeedService(t, &stubMarket{}, &stubPublisher{})
	feed, err := svc.GetFeed(context.Background(), GetFeedParams{
		RegionID: "la_port", Days: 365, AnchorDate: fixedAnchor(),
	})
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if feed.WindowDays != drepo.MaxWindowDays || len(feed.Days) != drepo.MaxWindowDays {
		t.Fatalf("expected clamp to %d days, got %d", drepo.MaxWindowDays, len(feed.Days))
	}
}

func TestGetFeedMarketBestEffort(t *testing.T) {
	svc, m := newTestFeedService(t, &stubMarket{err: fmt.Errorf("upstream down")}, &stubPublisher{})
	feed, err := svc.GetFeed(context.Background(), GetFeedParams{
		RegionID: "shanghai_port", Days: 30, IncludeMarket: true, AnchorDate: fixedAnchor(),
	})
	if err != nil {
		t.Fatalf("market failure should not fail the feed: %v", err)
	}
	if feed.Market != nil {
		t.Fatalf("expected no market overlay on failure")
	}
	if m.errors["feed_market"] != 1 {
		t.Fatalf("expected market error metric, got %v", m.errors)
	}
}

func TestGetFeedMarketOverlay(t *testing.T) {
	snap := &models.MarketSnapshot{
		Symbol: "FXI", Price: 31.2, Change1WPct: 4.2,
		SignalStrength: 0.42, Trend: "bullish",
	}
	svc, _ := newTestFeedService(t, &stubMarket{snap: snap}, &stubPublisher{})
	feed, err := svc.GetFeed(context.Background(), GetFeedParams{
		RegionID: "shanghai_port", Days: 30, IncludeMarket: true, AnchorDate: fixedAnchor(),
	})
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if feed.Market == nil || feed.Market.Symbol != "FXI" {
		t.Fatalf("expected market overlay, got %+v", feed.Market)
	}
}

func TestGetFeedPublishesEvent(t *testing.T) {
	pub := &stubPublisher{}
	svc, _ := newTestFeedService(t, &stubMarket{}, pub)
	if _, err := svc.GetFeed(context.Background(), GetFeedParams{
		RegionID: "la_port", Days: 30, AnchorDate: fixedAnchor(),
	}); err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if len(pub.feeds) != 1 {
		t.Fatalf("expected one feed event, got %d", len(pub.feeds))
	}
	if pub.feeds[0].RegionID != "la_port" {
		t.Fatalf("wrong region in event: %s", pub.feeds[0].RegionID)
	}
}

func TestGetAllFeeds(t *testing.T) {
	svc, _ := newTestFeedService(t, &stubMarket{}, &stubPublisher{})
	agg := NewFeedAggregateUseCase(svc)

	res, err := agg.GetAll(context.Background(), 30)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(res.Feeds) != 2 {
		t.Fatalf("expected 2 feeds, got %d", len(res.Feeds))
	}
	if res.Errors != nil {
		t.Fatalf("expected no errors, got %v", res.Errors)
	}
	// profile listing order is sorted by id
	if res.Feeds[0].RegionID != "la_port" || res.Feeds[1].RegionID != "shanghai_port" {
		t.Fatalf("feeds out of order: %s, %s", res.Feeds[0].RegionID, res.Feeds[1].RegionID)
	}
}
