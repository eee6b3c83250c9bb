package api

import (
	"net/http"
	"time"

	models "GeoPulse/internal/domain/models"
	domsvc "GeoPulse/internal/domain/service"
	"GeoPulse/internal/usecase"
	xhttp "GeoPulse/pkg/http"
	xmw "GeoPulse/pkg/http/middleware"
	xlogger "GeoPulse/pkg/logger"
	"GeoPulse/pkg/queue"

	"github.com/labstack/echo/v4"
)

// FeedEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type FeedEchoHandler struct {
	logger  *xlogger.Logger
	feeds   *usecase.FeedService
	agg     *usecase.FeedAggregateUseCase
	market  domsvc.MarketProvider
	refresh queue.QueueService
	cached  *FeedHandler
	mode    string
	started time.Time
}

func NewFeedEchoHandler(
	logger *xlogger.Logger,
	feeds *usecase.FeedService,
	agg *usecase.FeedAggregateUseCase,
	market domsvc.MarketProvider,
) *FeedEchoHandler {
	return &FeedEchoHandler{
		logger:  logger,
		feeds:   feeds,
		agg:     agg,
		market:  market,
		mode:    "simulated",
		started: time.Now(),
	}
}

// SetRefreshQueue wires the background refresh queue. Without it the
// refresh endpoint reports the queue as unavailable.
func (h *FeedEchoHandler) SetRefreshQueue(q queue.QueueService) { h.refresh = q }

// SetCachedHandler swaps the hot polling routes onto the caching,
// rate-limited net/http handler.
func (h *FeedEchoHandler) SetCachedHandler(c *FeedHandler) { h.cached = c }

func (h *FeedEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	g := e.Group("/api/v1")
	if h.cached != nil {
		mw := xmw.Metrics(h.logger, 500*time.Millisecond)
		g.GET("/regions", echo.WrapHandler(mw(h.cached.Regions())))
		g.GET("/signals", echo.WrapHandler(mw(h.cached.Feed())))
	} else {
		g.GET("/regions", h.Regions)
		g.GET("/signals", h.Signals)
	}
	g.GET("/signals/all", h.SignalsAll)
	g.GET("/market/:region_id", h.Market)
	g.POST("/refresh", h.Refresh)
}

func (h *FeedEchoHandler) Health(c echo.Context) error {
	profiles, err := h.feeds.Regions(c.Request().Context())
	if err != nil {
		h.logger.Error("health regions error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":         "ok",
		"generator_mode": h.mode,
		"regions":        len(profiles),
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}

func (h *FeedEchoHandler) Regions(c echo.Context) error {
	profiles, err := h.feeds.Regions(c.Request().Context())
	if err != nil {
		h.logger.Error("regions usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	out := make([]models.RegionDTO, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, models.RegionDTO{
			ID:        p.ID,
			Name:      p.Name,
			ProxyType: p.ProxyType,
			Symbol:    p.MarketSymbol,
		})
	}
	return xhttp.SuccessResponse(c, out)
}

func (h *FeedEchoHandler) Signals(c echo.Context) error {
	req := &models.FeedRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	feed, err := h.feeds.GetFeed(c.Request().Context(), usecase.GetFeedParams{
		RegionID:      req.RegionID,
		Days:          req.Days,
		IncludeMarket: req.IncludeMarket,
	})
	if err != nil {
		h.logger.Error("signals usecase error",
			xlogger.String("region_id", req.RegionID), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, models.ToFeedResponse(feed))
}

func (h *FeedEchoHandler) SignalsAll(c echo.Context) error {
	req := &models.FeedAllRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.agg.GetAll(c.Request().Context(), req.Days)
	if err != nil {
		h.logger.Error("signals/all usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	feeds := make([]models.FeedResponse, 0, len(res.Feeds))
	for _, f := range res.Feeds {
		feeds = append(feeds, models.ToFeedResponse(f))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"generated_at": res.GeneratedAt.UTC().Format(time.RFC3339),
		"feeds":        feeds,
		"errors":       res.Errors,
	})
}

func (h *FeedEchoHandler) Market(c echo.Context) error {
	regionID := c.Param("region_id")
	if regionID == "" {
		return xhttp.BadRequestResponse(c, "region_id required")
	}

	snap, err := h.market.Snapshot(c.Request().Context(), regionID)
	if err != nil {
		h.logger.Error("market usecase error",
			xlogger.String("region_id", regionID), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, models.ToMarketDTO(snap))
}

func (h *FeedEchoHandler) Refresh(c echo.Context) error {
	req := &models.RefreshRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.refresh == nil {
		return xhttp.AppErrorResponse(c,
			xhttp.NewAppError("queue_unavailable", "", "refresh queue is not configured", http.StatusServiceUnavailable))
	}

	// no region_id means refresh everything
	regions := []string{req.RegionID}
	if req.RegionID == "" {
		profiles, err := h.feeds.Regions(c.Request().Context())
		if err != nil {
			return xhttp.AppErrorResponse(c, err)
		}
		regions = regions[:0]
		for _, p := range profiles {
			regions = append(regions, p.ID)
		}
	}

	for _, id := range regions {
		payload := usecase.RefreshPayload{RegionID: id}
		if err := h.refresh.PublishMessage(c.Request().Context(), usecase.RefreshJobType, payload); err != nil {
			h.logger.Error("refresh enqueue error",
				xlogger.String("region_id", id), xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
	}
	return xhttp.DataResponse(c, http.StatusAccepted, map[string]interface{}{
		"status": "queued",
		"jobs":   len(regions),
	})
}
