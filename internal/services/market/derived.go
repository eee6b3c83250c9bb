package market

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"GeoPulse/internal/domain/models"
	"GeoPulse/internal/domain/repository"
	"GeoPulse/pkg/util"
)

// DerivedProvider synthesizes market snapshots when no live stream is
// configured. Snapshots are seeded from region and hour, so within an hour
// repeated requests agree and across hours values drift plausibly.
type DerivedProvider struct {
	profiles repository.ProfileStore
	now      func() time.Time
}

func NewDerivedProvider(profiles repository.ProfileStore) *DerivedProvider {
	return &DerivedProvider{profiles: profiles, now: time.Now}
}

func (p *DerivedProvider) Snapshot(ctx context.Context, regionID string) (*models.MarketSnapshot, error) {
	profile, err := p.profiles.Get(ctx, regionID)
	if err != nil {
		return nil, err
	}
	if profile.MarketSymbol == "" {
		return nil, fmt.Errorf("region %s has no market symbol", regionID)
	}

	now := p.now().UTC()
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%s", regionID, now.Format("2006-01-02T15"))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	price := 20 + rng.Float64()*180
	change1D := rng.NormFloat64() * 1.5
	change1W := change1D + rng.NormFloat64()*3

	strength := util.Clamp(change1W/10, -1, 1)

	return &models.MarketSnapshot{
		Symbol:         profile.MarketSymbol,
		Name:           profile.MarketName,
		Price:          price,
		Change1DPct:    change1D,
		Change1WPct:    change1W,
		SignalStrength: strength,
		Trend:          models.TrendFor(strength),
		Derived:        true,
		AsOf:           now,
	}, nil
}
