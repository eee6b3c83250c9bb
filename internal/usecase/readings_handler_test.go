package usecase

import (
	"context"
	"testing"
	"time"

	"GeoPulse/internal/domain/models"
	internalrepo "GeoPulse/internal/repository"
	"GeoPulse/internal/services/signal"
)

func newTestFusion(t *testing.T, pub *stubPublisher) (*ReadingFusion, *stubMetrics) {
	t.Helper()
	store, err := internalrepo.NewConfigProfileStore(feedProfiles())
	if err != nil {
		t.Fatalf("profile store: %v", err)
	}
	m := newStubMetrics()
	proc := NewEventProcessor(nil, pub, m, "log")
	return NewReadingFusion(store, signal.NewNormalizer(signal.DefaultTuning()), signal.NewEngine(signal.DefaultTuning()), proc, m), m
}

func TestFusionProcess(t *testing.T) {
	pub := &stubPublisher{}
	fusion, _ := newTestFusion(t, pub)

	// strongly divergent channels with decent confidence produce an alert
	err := fusion.Process(context.Background(), &models.RawReading{
		RegionID:        "shanghai_port",
		ActivityDelta:   -40,
		NightLightDelta: -30,
		Sentiment:       0.9,
		Diversity:       0.9,
		HeadlineVolume:  150,
		Hype:            85,
		Timestamp:       time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(pub.alerts) == 0 {
		t.Fatalf("expected at least one published alert")
	}
	if pub.alerts[0].RegionID != "shanghai_port" {
		t.Fatalf("wrong region: %s", pub.alerts[0].RegionID)
	}
}

func TestFusionUnknownRegion(t *testing.T) {
	fusion, m := newTestFusion(t, &stubPublisher{})
	err := fusion.Process(context.Background(), &models.RawReading{
		RegionID:  "atlantis",
		Timestamp: time.Now().Unix(),
	})
	if err == nil {
		t.Fatalf("expected error for unknown region")
	}
	if m.errors["fusion_unknown_region"] != 1 {
		t.Fatalf("expected unknown region metric, got %v", m.errors)
	}
}

type captureProcessor struct {
	got *models.RawReading
	err error
}

func (p *captureProcessor) Process(_ context.Context, r *models.RawReading) error {
	p.got = r
	return p.err
}

func TestReadingsHandlerHandle(t *testing.T) {
	sink := &captureProcessor{}
	m := newStubMetrics()
	h := NewReadingsHandler("geopulse.readings", sink, m)

	if h.Topic() != "geopulse.readings" {
		t.Fatalf("topic = %s", h.Topic())
	}

	msg := []byte(`{"region_id":"shanghai_port","activity_delta":0.2,"sentiment":0.1,"diversity":0.5,"headline_volume":40,"hype":20,"t":1750000000000}`)
	if err := h.Handle(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if sink.got == nil {
		t.Fatalf("reading not forwarded")
	}
	// millisecond timestamps are normalized to seconds
	if sink.got.Timestamp != 1750000000 {
		t.Fatalf("timestamp = %d, want 1750000000", sink.got.Timestamp)
	}
}

func TestReadingsHandlerBadPayload(t *testing.T) {
	m := newStubMetrics()
	h := NewReadingsHandler("geopulse.readings", &captureProcessor{}, m)

	if err := h.Handle(context.Background(), []byte(`{not json`)); err == nil {
		t.Fatalf("expected unmarshal error")
	}
	if m.errors["consumer_unmarshal"] != 1 {
		t.Fatalf("expected unmarshal metric, got %v", m.errors)
	}
}
