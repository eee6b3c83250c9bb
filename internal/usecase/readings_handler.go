package usecase

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"GeoPulse/internal/domain/models"
	domrepo "GeoPulse/internal/domain/repository"
	"GeoPulse/internal/services/signal"
	pkgkafka "GeoPulse/pkg/kafka"
)

// ReadingFusion is the live fusion path: normalize an external raw reading,
// score its divergence and push any resulting alerts out.
type ReadingFusion struct {
	profiles domrepo.ProfileStore
	norm     *signal.Normalizer
	engine   *signal.Engine
	proc     *EventProcessor
	metrics  domrepo.Metrics
}

func NewReadingFusion(profiles domrepo.ProfileStore, norm *signal.Normalizer, engine *signal.Engine, proc *EventProcessor, metrics domrepo.Metrics) *ReadingFusion {
	return &ReadingFusion{
		profiles: profiles,
		norm:     norm,
		engine:   engine,
		proc:     proc,
		metrics:  metrics,
	}
}

// Process fuses one reading. Unknown regions are rejected before scoring.
func (f *ReadingFusion) Process(ctx context.Context, r *models.RawReading) error {
	if _, err := f.profiles.Get(ctx, r.RegionID); err != nil {
		f.metrics.RecordError("fusion_unknown_region")
		return err
	}

	phys := f.norm.CompositePhysicalScore(r.ActivityDelta, r.NightLightDelta, r.VegetationDelta)
	narr := f.norm.NarrativeScore(r.Sentiment, r.Diversity)

	// External readings carry no confidence of their own; estimate it from
	// volume and diversity the same way the narrative channel does.
	conf := 0.4 + 0.3*math.Min(1, float64(r.HeadlineVolume)/100) + 0.25*r.Diversity

	div, alerts := f.engine.Compute(signal.Reading{
		PhysicalScore:       phys,
		NarrativeScore:      narr,
		PhysicalConfidence:  conf,
		NarrativeConfidence: conf,
		HypeIntensity:       r.Hype,
		HeadlineVolume:      r.HeadlineVolume,
	})

	f.metrics.RecordDivergence(r.RegionID, div)
	return f.proc.ProcessAlerts(ctx, r.RegionID, alerts)
}

// readingProcessor is what the handler forwards readings into, normally
// the ingest pipeline.
type readingProcessor interface {
	Process(ctx context.Context, r *models.RawReading) error
}

// ReadingsHandler consumes raw readings from Kafka and feeds them into the
// ingest pipeline.
type ReadingsHandler struct {
	topic   string
	proc    readingProcessor
	metrics domrepo.Metrics
}

func NewReadingsHandler(topic string, proc readingProcessor, metrics domrepo.Metrics) *ReadingsHandler {
	return &ReadingsHandler{topic: topic, proc: proc, metrics: metrics}
}

func (h *ReadingsHandler) Topic() string { return h.topic }

func (h *ReadingsHandler) Handle(ctx context.Context, b []byte) error {
	var r models.RawReading
	if err := json.Unmarshal(b, &r); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if r.Timestamp > 1e11 { // ms
		r.Timestamp = r.Timestamp / 1000
	}
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(time.Unix(r.Timestamp, 0)).Seconds())

	if err := h.proc.Process(ctx, &r); err != nil {
		h.metrics.RecordError("consumer_process")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*ReadingsHandler)(nil)
