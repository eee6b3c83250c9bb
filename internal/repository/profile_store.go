package repository

import (
	"context"
	"fmt"
	"sort"

	"GeoPulse/internal/domain/models"
	"GeoPulse/internal/domain/repository"
)

// ConfigProfileStore serves region profiles loaded from configuration.
// Profiles are validated once at construction and immutable afterward.
type ConfigProfileStore struct {
	byID  map[string]*models.RegionProfile
	order []string
}

// NewConfigProfileStore validates and indexes the configured profiles.
func NewConfigProfileStore(profiles []models.RegionProfile) (*ConfigProfileStore, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no region profiles configured")
	}
	byID := make(map[string]*models.RegionProfile, len(profiles))
	order := make([]string, 0, len(profiles))
	for i := range profiles {
		p := profiles[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("region %q: %w", p.ID, err)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate region id %q", p.ID)
		}
		byID[p.ID] = &p
		order = append(order, p.ID)
	}
	sort.Strings(order)
	return &ConfigProfileStore{byID: byID, order: order}, nil
}

func (s *ConfigProfileStore) Get(_ context.Context, regionID string) (*models.RegionProfile, error) {
	p, ok := s.byID[regionID]
	if !ok {
		return nil, fmt.Errorf("unknown region %q", regionID)
	}
	return p, nil
}

func (s *ConfigProfileStore) List(_ context.Context) ([]*models.RegionProfile, error) {
	out := make([]*models.RegionProfile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

var _ repository.ProfileStore = (*ConfigProfileStore)(nil)
