package api

import (
	"encoding/json"
	"net/http"
	"time"

	models "GeoPulse/internal/domain/models"
	domrepo "GeoPulse/internal/domain/repository"
	icache "GeoPulse/internal/service/cache"
	"GeoPulse/internal/service/metrics"
	"GeoPulse/internal/service/ratelimit"
	"GeoPulse/internal/usecase"
	applogger "GeoPulse/pkg/logger"
	"GeoPulse/pkg/util"
)

// FeedHandler serves the plain net/http feed surface with response caching
// and per-client rate limiting. The Echo surface stays uncached; this one
// fronts dashboard polling.
type FeedHandler struct {
	feeds *usecase.FeedService
	cache icache.BytesCache
	rl    *ratelimit.Limiter
	l     *applogger.Logger
}

func NewFeedHandler(feeds *usecase.FeedService) *FeedHandler {
	metrics.Register()
	return &FeedHandler{feeds: feeds, rl: ratelimit.New()}
}

func (h *FeedHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetLogger injects a structured logger.
func (h *FeedHandler) SetLogger(l *applogger.Logger) { h.l = l }

func (h *FeedHandler) Feed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "feed"
		defer func() { metrics.FeedLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		regionID := r.URL.Query().Get("region_id")
		if regionID == "" {
			if h.l != nil {
				h.l.Warn("feed.get missing region_id")
			}
			http.Error(w, "region_id required", http.StatusBadRequest)
			return
		}
		days := domrepo.NormalizeWindow(util.ParseIntDefault(r.URL.Query().Get("days"), domrepo.DefaultWindowDays))
		includeMarket := r.URL.Query().Get("include_market") == "true"
		if !h.rl.Allow(r.RemoteAddr+":feed", 5, 2) {
			if h.l != nil {
				h.l.Warn("feed.get rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		cacheKey := icache.FeedKey(regionID, days, includeMarket)
		if h.cache != nil {
			if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
				if h.l != nil {
					h.l.Warn("feed.get cache_get_error", applogger.Error(err))
				}
			} else if ok {
				w.Header().Set("Content-Type", "application/json")
				if h.l != nil {
					h.l.Debug("feed.get cache_hit", applogger.String("key", cacheKey))
				}
				if _, err := w.Write(b); err != nil && h.l != nil {
					h.l.Warn("feed.get write_error", applogger.Error(err))
				}
				return
			}
			if h.l != nil {
				h.l.Debug("feed.get cache_miss", applogger.String("key", cacheKey))
			}
		}
		feed, err := h.feeds.GetFeed(r.Context(), usecase.GetFeedParams{
			RegionID:      regionID,
			Days:          days,
			IncludeMarket: includeMarket,
		})
		if err != nil {
			metrics.FeedErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("feed.get error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		b, err := json.Marshal(models.ToFeedResponse(feed))
		if err != nil {
			if h.l != nil {
				h.l.Error("feed.get marshal_error", applogger.Error(err))
			}
			http.Error(w, "encode error", http.StatusInternalServerError)
			return
		}
		if h.cache != nil {
			if err := h.cache.SetBytes(cacheKey, b, 30*time.Second); err != nil && h.l != nil {
				h.l.Warn("feed.get cache_set_error", applogger.Error(err))
			}
		}
		if _, err := w.Write(b); err != nil && h.l != nil {
			h.l.Warn("feed.get write_error", applogger.Error(err))
		}
	}
}

func (h *FeedHandler) Regions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "regions"
		defer func() { metrics.FeedLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		cacheKey := "regions"
		if h.cache != nil {
			if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
				if h.l != nil {
					h.l.Warn("feed.regions cache_get_error", applogger.Error(err))
				}
			} else if ok {
				w.Header().Set("Content-Type", "application/json")
				if _, err := w.Write(b); err != nil && h.l != nil {
					h.l.Warn("feed.regions write_error", applogger.Error(err))
				}
				return
			}
		}
		profiles, err := h.feeds.Regions(r.Context())
		if err != nil {
			metrics.FeedErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("feed.regions error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
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
		w.Header().Set("Content-Type", "application/json")
		b, err := json.Marshal(out)
		if err != nil {
			if h.l != nil {
				h.l.Error("feed.regions marshal_error", applogger.Error(err))
			}
			http.Error(w, "encode error", http.StatusInternalServerError)
			return
		}
		if h.cache != nil {
			if err := h.cache.SetBytes(cacheKey, b, 60*time.Second); err != nil && h.l != nil {
				h.l.Warn("feed.regions cache_set_error", applogger.Error(err))
			}
		}
		if _, err := w.Write(b); err != nil && h.l != nil {
			h.l.Warn("feed.regions write_error", applogger.Error(err))
		}
	}
}
