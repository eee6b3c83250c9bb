package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"GeoPulse/internal/domain/models"
	drepo "GeoPulse/internal/domain/repository"
	domsvc "GeoPulse/internal/domain/service"
	"GeoPulse/pkg/util"
)

// MarketCollector consumes the live quote stream and maintains rolling
// per-symbol price windows. It serves snapshots from the live state and
// falls back to the derived provider for symbols with no data yet.
type MarketCollector struct {
	stream   drepo.MarketStream
	profiles drepo.ProfileStore
	fallback domsvc.MarketProvider
	metrics  drepo.Metrics

	mu      sync.RWMutex
	windows map[string]*priceWindow
}

// NewMarketCollector creates a new MarketCollector instance.
func NewMarketCollector(stream drepo.MarketStream, profiles drepo.ProfileStore, fallback domsvc.MarketProvider, metrics drepo.Metrics) *MarketCollector {
	return &MarketCollector{
		stream:   stream,
		profiles: profiles,
		fallback: fallback,
		metrics:  metrics,
		windows:  make(map[string]*priceWindow),
	}
}

// IsConnected returns true if the quote stream is connected.
func (c *MarketCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *MarketCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	qCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, qCh, errCh)
	return nil
}

func (c *MarketCollector) consume(ctx context.Context, qCh <-chan *models.Quote, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("market_stream")
				_ = c.stream.Reconnect(ctx)
			}
		case q := <-qCh:
			if q == nil {
				continue
			}
			c.observe(q)
		}
	}
}

func (c *MarketCollector) observe(q *models.Quote) {
	day := q.Timestamp.UTC().Format(util.DayLayout)
	c.mu.Lock()
	w, ok := c.windows[q.Symbol]
	if !ok {
		w = newPriceWindow(7)
		c.windows[q.Symbol] = w
	}
	w.Observe(day, q.Price)
	c.mu.Unlock()
}

// Snapshot serves a region's market overlay from the live windows,
// deferring to the fallback provider until enough stream data arrives.
func (c *MarketCollector) Snapshot(ctx context.Context, regionID string) (*models.MarketSnapshot, error) {
	profile, err := c.profiles.Get(ctx, regionID)
	if err != nil {
		return nil, err
	}
	if profile.MarketSymbol == "" {
		return nil, fmt.Errorf("region %s has no market symbol", regionID)
	}

	c.mu.RLock()
	w, ok := c.windows[profile.MarketSymbol]
	var price float64
	var change1D, change1W float64
	if ok {
		price, ok = w.Last()
		if ok {
			change1D, change1W = w.ChangePct()
		}
	}
	c.mu.RUnlock()

	if !ok {
		if c.fallback != nil {
			return c.fallback.Snapshot(ctx, regionID)
		}
		return nil, fmt.Errorf("no market data for %s", profile.MarketSymbol)
	}

	strength := util.Clamp(change1W/10, -1, 1)
	return &models.MarketSnapshot{
		Symbol:         profile.MarketSymbol,
		Name:           profile.MarketName,
		Price:          price,
		Change1DPct:    change1D,
		Change1WPct:    change1W,
		SignalStrength: strength,
		Trend:          models.TrendFor(strength),
		AsOf:           time.Now().UTC(),
	}, nil
}

func (c *MarketCollector) Stop() error { return c.stream.Close() }

// Shutdown closes the stream.
func (c *MarketCollector) Shutdown(ctx context.Context) error {
	return c.stream.Close()
}
