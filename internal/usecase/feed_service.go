package usecase

import (
	"context"
	"fmt"
	"time"

	"GeoPulse/internal/domain/models"
	domrepo "GeoPulse/internal/domain/repository"
	domsvc "GeoPulse/internal/domain/service"
	"GeoPulse/internal/services/signal"
	"GeoPulse/internal/services/simulation"
	"GeoPulse/pkg/logger"
	"GeoPulse/pkg/util"
)

// FeedService generates the intelligence feed for a region: simulate both
// channels, score per-day divergence, fuse the latest day with the market
// overlay, classify alerts, and hand the result to the event processor.
type FeedService struct {
	profiles  domrepo.ProfileStore
	headlines domsvc.HeadlineGenerator
	market    domsvc.MarketProvider
	engine    *signal.Engine
	proc      *EventProcessor
	metrics   domrepo.Metrics
	tuning    simulation.Tuning
	log       *logger.Logger
	now       func() time.Time
}

func NewFeedService(
	profiles domrepo.ProfileStore,
	headlines domsvc.HeadlineGenerator,
	market domsvc.MarketProvider,
	engine *signal.Engine,
	proc *EventProcessor,
	metrics domrepo.Metrics,
	tuning simulation.Tuning,
	log *logger.Logger,
) *FeedService {
	return &FeedService{
		profiles:  profiles,
		headlines: headlines,
		market:    market,
		engine:    engine,
		proc:      proc,
		metrics:   metrics,
		tuning:    tuning,
		log:       log,
		now:       time.Now,
	}
}

type GetFeedParams struct {
	RegionID      string
	Days          int
	IncludeMarket bool
	AnchorDate    time.Time // zero value means today
}

// GetFeed produces the full feed for one region.
func (s *FeedService) GetFeed(ctx context.Context, p GetFeedParams) (*models.RegionFeed, error) {
	start := time.Now()

	if p.RegionID == "" {
		return nil, fmt.Errorf("region_id required")
	}
	if p.Days < 0 {
		return nil, fmt.Errorf("days must be positive")
	}
	window := domrepo.NormalizeWindow(p.Days)

	profile, err := s.profiles.Get(ctx, p.RegionID)
	if err != nil {
		s.metrics.RecordError("feed_unknown_region")
		return nil, err
	}

	anchor := p.AnchorDate
	if anchor.IsZero() {
		anchor = s.now()
	}
	anchor = util.StartOfDay(anchor)

	sim := simulation.New(profile, s.headlines, s.tuning)
	days, regimes, err := sim.Run(ctx, anchor, window)
	if err != nil {
		s.metrics.RecordError("feed_simulate")
		return nil, fmt.Errorf("simulate %s: %w", p.RegionID, err)
	}

	for i := range days {
		d := &days[i]
		d.DivergenceScore = s.engine.Score(signal.Reading{
			PhysicalScore:       d.PhysicalScore,
			NarrativeScore:      d.NarrativeScore,
			PhysicalConfidence:  d.Physical.Confidence,
			NarrativeConfidence: d.Narrative.Confidence,
			HypeIntensity:       d.Narrative.HypeIntensity,
			HeadlineVolume:      d.Narrative.HeadlineVolume,
		})
	}

	feed := &models.RegionFeed{
		RegionID:    profile.ID,
		RegionName:  profile.Name,
		AnchorDate:  anchor,
		WindowDays:  window,
		GeneratedAt: s.now().UTC(),
		Days:        days,
		Regimes:     regimes,
	}

	if p.IncludeMarket {
		snap, merr := s.market.Snapshot(ctx, p.RegionID)
		if merr != nil {
			// market overlay is best-effort
			s.metrics.RecordError("feed_market")
			s.log.Warn("market snapshot unavailable",
				logger.String("region_id", p.RegionID),
				logger.Error(merr))
		} else {
			feed.Market = snap
		}
	}

	latest := feed.Latest()
	reading := signal.Reading{
		PhysicalScore:       latest.PhysicalScore,
		NarrativeScore:      latest.NarrativeScore,
		PhysicalConfidence:  latest.Physical.Confidence,
		NarrativeConfidence: latest.Narrative.Confidence,
		HypeIntensity:       latest.Narrative.HypeIntensity,
		HeadlineVolume:      latest.Narrative.HeadlineVolume,
	}
	if feed.Market != nil {
		m := feed.Market.SignalStrength
		reading.MarketScore = &m
	}
	feed.Divergence, feed.Alerts = s.engine.Compute(reading)

	s.metrics.RecordFeedGenerated(profile.ID)
	s.metrics.RecordDivergence(profile.ID, feed.Divergence)
	s.metrics.RecordLatency("feed_generate", time.Since(start).Seconds())

	if err := s.proc.ProcessFeed(ctx, feed); err != nil {
		// event delivery must not fail the read path
		s.log.Warn("feed event publish failed",
			logger.String("region_id", profile.ID),
			logger.Error(err))
	}

	return feed, nil
}

// Regions lists the configured regions with their latest regime summary.
func (s *FeedService) Regions(ctx context.Context) ([]*models.RegionProfile, error) {
	return s.profiles.List(ctx)
}
