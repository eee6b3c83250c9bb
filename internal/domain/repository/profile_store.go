package repository

import (
	"context"

	"GeoPulse/internal/domain/models"
)

// ProfileStore provides read-only access to configured region profiles.
type ProfileStore interface {
	Get(ctx context.Context, regionID string) (*models.RegionProfile, error)
	List(ctx context.Context) ([]*models.RegionProfile, error)
}
