package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	feedsGenerated *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	divergence     *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		feedsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geopulse_feeds_generated_total",
				Help: "Total number of region feeds generated",
			},
			[]string{"region"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geopulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		divergence: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "geopulse_divergence_score",
				Help: "Latest divergence score for a region",
			},
			[]string{"region"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "geopulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFeedGenerated records a completed feed generation for a region.
func (r *Recorder) RecordFeedGenerated(regionID string) {
	r.feedsGenerated.WithLabelValues(regionID).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordDivergence records the latest divergence score for a region.
func (r *Recorder) RecordDivergence(regionID string, score float64) {
	r.divergence.WithLabelValues(regionID).Set(score)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
