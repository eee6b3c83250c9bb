package usecase

import (
	"context"
	"sync"
	"time"

	"GeoPulse/internal/domain/models"
)

// FeedAggregateUseCase fans out feed generation across all regions.
type FeedAggregateUseCase struct {
	feeds   *FeedService
	timeout time.Duration
}

func NewFeedAggregateUseCase(feeds *FeedService) *FeedAggregateUseCase {
	return &FeedAggregateUseCase{feeds: feeds, timeout: 10 * time.Second}
}

type AllFeedsResult struct {
	GeneratedAt time.Time
	Feeds       []*models.RegionFeed
	Errors      map[string]string
}

// GetAll generates feeds for every configured region concurrently. Regions
// are independent pure computations; one region failing never blocks the
// others, its error lands in the per-region error map.
func (uc *FeedAggregateUseCase) GetAll(ctx context.Context, days int) (*AllFeedsResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	profiles, err := uc.feeds.Regions(ctx)
	if err != nil {
		return nil, err
	}

	res := &AllFeedsResult{
		GeneratedAt: time.Now().UTC(),
		Errors:      map[string]string{},
	}

	type item struct {
		regionID string
		feed     *models.RegionFeed
		err      error
	}
	ch := make(chan item, len(profiles))
	var wg sync.WaitGroup

	for _, p := range profiles {
		wg.Add(1)
		go func(regionID string) {
			defer wg.Done()
			feed, ferr := uc.feeds.GetFeed(ctx, GetFeedParams{RegionID: regionID, Days: days})
			ch <- item{regionID, feed, ferr}
		}(p.ID)
	}

	go func() { wg.Wait(); close(ch) }()

	byID := make(map[string]*models.RegionFeed, len(profiles))
	for it := range ch {
		if it.err != nil {
			res.Errors[it.regionID] = it.err.Error()
			continue
		}
		byID[it.regionID] = it.feed
	}

	// preserve the profile listing order
	for _, p := range profiles {
		if feed, ok := byID[p.ID]; ok {
			res.Feeds = append(res.Feeds, feed)
		}
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
