package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	FeedLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geopulse",
			Subsystem: "feed",
			Name:      "latency_seconds",
			Help:      "Latency of feed endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	FeedErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geopulse",
			Subsystem: "feed",
			Name:      "errors_total",
			Help:      "Errors by feed endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(FeedLatency, FeedErrors)
	})
}
