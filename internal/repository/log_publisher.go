package repository

import (
	"context"

	"GeoPulse/internal/domain/models"
	"GeoPulse/internal/domain/repository"
	"GeoPulse/pkg/logger"
)

// LogPublisher implements Publisher by writing events to the structured
// log. Used when no broker is configured.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher creates a log-backed event publisher.
func NewLogPublisher(log *logger.Logger) repository.Publisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishFeed(_ context.Context, ev models.FeedEvent) error {
	p.log.Info("feed event",
		logger.String("event_id", ev.EventID),
		logger.String("region_id", ev.RegionID),
		logger.String("anchor_date", ev.AnchorDate),
		logger.Float64("divergence", ev.Divergence),
		logger.String("alert_level", ev.AlertLevel))
	return nil
}

func (p *LogPublisher) PublishAlert(_ context.Context, ev models.AlertEvent) error {
	p.log.Info("alert event",
		logger.String("event_id", ev.EventID),
		logger.String("region_id", ev.RegionID),
		logger.String("level", ev.Level),
		logger.String("title", ev.Title))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
