package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"GeoPulse/internal/domain/models"
	icache "GeoPulse/internal/service/cache"
	"GeoPulse/pkg/logger"
	"GeoPulse/pkg/queue"
)

// RefreshJobType is the queue message type routed to RefreshJob.
const RefreshJobType = "feed.refresh"

// RefreshPayload is the queued request to regenerate one region's feed.
type RefreshPayload struct {
	RegionID string `json:"region_id"`
	Days     int    `json:"days"`
}

// RefreshJob regenerates a region feed in the background. Generation
// re-publishes the feed event; with a response cache attached it also warms
// the entry the polling handler serves from.
type RefreshJob struct {
	feeds *FeedService
	cache icache.BytesCache
	log   *logger.Logger
}

func NewRefreshJob(feeds *FeedService, log *logger.Logger) *RefreshJob {
	return &RefreshJob{feeds: feeds, log: log}
}

// SetResponseCache attaches the handler's response cache for warming.
func (j *RefreshJob) SetResponseCache(c icache.BytesCache) { j.cache = c }

func (j *RefreshJob) Name() string { return "feed_refresh" }
func (j *RefreshJob) Type() string { return RefreshJobType }

func (j *RefreshJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[RefreshPayload](payload)
	if err != nil {
		return fmt.Errorf("refresh payload: %w", err)
	}

	feed, err := j.feeds.GetFeed(ctx, GetFeedParams{RegionID: p.RegionID, Days: p.Days})
	if err != nil {
		return fmt.Errorf("refresh %s: %w", p.RegionID, err)
	}

	if j.cache != nil {
		if b, merr := json.Marshal(models.ToFeedResponse(feed)); merr == nil {
			key := icache.FeedKey(feed.RegionID, feed.WindowDays, false)
			if cerr := j.cache.SetBytes(key, b, 30*time.Second); cerr != nil {
				j.log.Warn("feed refresh cache warm failed",
					logger.String("region_id", feed.RegionID),
					logger.Error(cerr))
			}
		}
	}

	j.log.Info("feed refreshed",
		logger.String("region_id", feed.RegionID),
		logger.Int("window_days", feed.WindowDays),
		logger.Float64("divergence", feed.Divergence))
	return nil
}

var _ queue.Job = (*RefreshJob)(nil)
