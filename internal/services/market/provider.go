package market

import (
	"context"
	"time"

	"GeoPulse/internal/domain/models"
	"GeoPulse/internal/domain/service"
	"GeoPulse/pkg/cache"
	"GeoPulse/pkg/logger"
)

const snapshotTTL = 5 * time.Minute

// CachedProvider serves market snapshots from cache, falling through to
// the underlying source on a miss. Cache failures degrade to the source,
// never to an error.
type CachedProvider struct {
	source service.MarketProvider
	cache  cache.Service
	log    *logger.Logger
}

func NewCachedProvider(source service.MarketProvider, c cache.Service, log *logger.Logger) *CachedProvider {
	return &CachedProvider{source: source, cache: c, log: log}
}

func (p *CachedProvider) Snapshot(ctx context.Context, regionID string) (*models.MarketSnapshot, error) {
	key := cache.GenerateKey("market:snapshot", regionID)

	var cached models.MarketSnapshot
	if err := p.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	snap, err := p.source.Snapshot(ctx, regionID)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, snap, snapshotTTL); err != nil {
		p.log.Warn("market snapshot cache set failed",
			logger.String("region_id", regionID),
			logger.Error(err))
	}
	return snap, nil
}
