package service

import (
	"context"
	"time"

	"GeoPulse/internal/domain/models"
)

// HeadlineGenerator produces illustrative headlines for one day of a
// region's narrative channel. Implementations draw from textSeed only,
// so swapping one out never disturbs the numeric simulation.
type HeadlineGenerator interface {
	Generate(textSeed int64, regionName string, date time.Time, sentiment float64, regime *models.Regime, count int) ([]models.Headline, error)
}

// MarketProvider resolves the market overlay for a region.
type MarketProvider interface {
	Snapshot(ctx context.Context, regionID string) (*models.MarketSnapshot, error)
}
