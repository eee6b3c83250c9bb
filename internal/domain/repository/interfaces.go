package repository

import (
	"context"

	"GeoPulse/internal/domain/models"
)

type MarketStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Quote, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	PublishFeed(ctx context.Context, ev models.FeedEvent) error
	PublishAlert(ctx context.Context, ev models.AlertEvent) error
	Close() error
}

type Metrics interface {
	RecordFeedGenerated(regionID string)
	RecordError(kind string)
	RecordDivergence(regionID string, score float64)
	RecordLatency(op string, seconds float64)
}
