package signal

import (
	"math"

	"GeoPulse/internal/domain/models"
	"GeoPulse/pkg/util"
)

// Reading is one fused observation handed to the divergence engine.
type Reading struct {
	PhysicalScore       float64
	NarrativeScore      float64
	PhysicalConfidence  float64
	NarrativeConfidence float64
	HypeIntensity       float64

	// MarketScore, when present, arbitrates which channel looks wrong.
	MarketScore *float64

	HeadlineVolume    int
	SourceUnavailable bool
}

// Engine reduces channel disagreement to a bounded [0, 100] index and a
// ranked alert list.
type Engine struct {
	tuning Tuning
}

func NewEngine(tuning Tuning) *Engine {
	return &Engine{tuning: tuning}
}

// Score computes the divergence index. It is zero exactly when the two
// scores agree, grows monotonically with the gap, is weighted down by low
// confidence and amplified by hype. A supplied market score upweights the
// index when it sides with one channel against the other.
func (e *Engine) Score(r Reading) float64 {
	rawGap := math.Abs(r.PhysicalScore-r.NarrativeScore) / 2

	confWeight := (r.PhysicalConfidence + r.NarrativeConfidence) / 2
	if r.MarketScore != nil {
		confWeight = 0.3 + 0.7*confWeight
	}

	hypeAmp := 1 + (r.HypeIntensity/100)*e.tuning.HypeAmpFactor

	div := rawGap * confWeight * hypeAmp * e.marketFactor(r) * 100
	if !util.IsFinite(div) {
		return 0
	}
	return util.Clamp(div, 0, 100)
}

// marketFactor compares the market score with both channels. When the
// market tracks the physical channel the narrative is the outlier, which
// is the more dangerous case and gets the larger multiplier.
func (e *Engine) marketFactor(r Reading) float64 {
	if r.MarketScore == nil {
		return 1.0
	}
	m := *r.MarketScore
	distPhysical := math.Abs(m - r.PhysicalScore)
	distNarrative := math.Abs(m - r.NarrativeScore)

	switch {
	case distPhysical < distNarrative:
		return 1.2
	case distNarrative < distPhysical:
		return 1.1
	default:
		return 1.0
	}
}

// Compute runs the full fusion: index plus classified alerts.
func (e *Engine) Compute(r Reading) (float64, []models.Alert) {
	div := e.Score(r)
	return div, e.classify(r, div)
}
