package usecase

import (
	"context"
	"fmt"
	"time"

	"GeoPulse/internal/domain/models"
	drepo "GeoPulse/internal/domain/repository"
)

// EventProcessor routes generated events to the configured backend.
type EventProcessor struct {
	kafkaPub drepo.Publisher
	logPub   drepo.Publisher
	metrics  drepo.Metrics
	backend  string
}

// NewEventProcessor creates a new EventProcessor instance.
func NewEventProcessor(kafkaPub, logPub drepo.Publisher, metrics drepo.Metrics, backend string) *EventProcessor {
	return &EventProcessor{
		kafkaPub: kafkaPub,
		logPub:   logPub,
		metrics:  metrics,
		backend:  backend,
	}
}

func (p *EventProcessor) publisher() (drepo.Publisher, error) {
	switch p.backend {
	case "kafka":
		return p.kafkaPub, nil
	case "log":
		return p.logPub, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", p.backend)
	}
}

// ProcessFeed publishes the event envelope for a generated feed.
func (p *EventProcessor) ProcessFeed(ctx context.Context, feed *models.RegionFeed) error {
	if feed == nil {
		return fmt.Errorf("feed is nil")
	}

	pub, err := p.publisher()
	if err != nil {
		p.metrics.RecordError("process_feed")
		return err
	}

	start := time.Now()
	if err := pub.PublishFeed(ctx, models.NewFeedEvent(feed)); err != nil {
		p.metrics.RecordError("process_feed")
		return fmt.Errorf("publish feed event: %w", err)
	}
	p.metrics.RecordLatency("publish_feed", time.Since(start).Seconds())
	return nil
}

// ProcessAlerts publishes alert events. Informational alerts are skipped;
// only findings worth acting on leave the service.
func (p *EventProcessor) ProcessAlerts(ctx context.Context, regionID string, alerts []models.Alert) error {
	pub, err := p.publisher()
	if err != nil {
		p.metrics.RecordError("process_alerts")
		return err
	}

	for _, a := range alerts {
		if a.Level == models.AlertLevelInfo || a.Level == models.AlertLevelOK {
			continue
		}
		if err := pub.PublishAlert(ctx, models.NewAlertEvent(regionID, a)); err != nil {
			p.metrics.RecordError("process_alerts")
			return fmt.Errorf("publish alert event: %w", err)
		}
	}
	return nil
}

// Close closes underlying publishers.
func (p *EventProcessor) Close() {
	if p.kafkaPub != nil {
		_ = p.kafkaPub.Close()
	}
	if p.logPub != nil {
		_ = p.logPub.Close()
	}
}
