package logger

import (
	"context"
	"testing"
	"time"
)

type capturePublisher struct {
	ch chan []AggregatedLogEntry
}

func (p *capturePublisher) PublishMessage(_ context.Context, _ string, payload interface{}) error {
	entries, ok := payload.([]AggregatedLogEntry)
	if !ok {
		return nil
	}
	p.ch <- entries
	return nil
}

func TestCollectorFlushOnThreshold(t *testing.T) {
	pub := &capturePublisher{ch: make(chan []AggregatedLogEntry, 1)}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 2,
		Topic:          "geopulse.logs",
		Publisher:      pub,
	})
	defer c.Close()

	c.AddLog("error", "feed event publish failed", map[string]interface{}{"region_id": "suez_logistics"}, "a.go:1")
	c.AddLog("error", "feed event publish failed", map[string]interface{}{"region_id": "suez_logistics"}, "a.go:1")
	c.AddLog("error", "market snapshot unavailable", nil, "b.go:2")

	select {
	case entries := <-pub.ch:
		if len(entries) != 2 {
			t.Fatalf("expected 2 aggregated entries, got %d", len(entries))
		}
		counts := map[string]int{}
		for _, e := range entries {
			counts[e.Message] = e.Count
		}
		if counts["feed event publish failed"] != 2 {
			t.Fatalf("repeated log not aggregated: %v", counts)
		}
		if counts["market snapshot unavailable"] != 1 {
			t.Fatalf("unexpected counts: %v", counts)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("batch never reached the publisher")
	}
}

func TestCollectorFlushOnClose(t *testing.T) {
	pub := &capturePublisher{ch: make(chan []AggregatedLogEntry, 1)}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 100,
		Topic:          "geopulse.logs",
		Publisher:      pub,
	})

	c.AddLog("error", "consumer handler error", nil, "c.go:3")
	c.Close()

	select {
	case entries := <-pub.ch:
		if len(entries) != 1 || entries[0].Message != "consumer handler error" {
			t.Fatalf("unexpected final flush: %+v", entries)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("final flush never reached the publisher")
	}
}
