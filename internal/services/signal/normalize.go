package signal

import (
	"math"

	"GeoPulse/pkg/util"
)

// Normalizer maps raw channel readings into bounded scores. It is used for
// externally sourced readings; the simulator produces already-normalized
// scores of its own.
type Normalizer struct {
	tuning Tuning
}

func NewNormalizer(tuning Tuning) *Normalizer {
	return &Normalizer{tuning: tuning}
}

// PhysicalScore squashes an unbounded percentage delta into [-1, 1].
// At the default scale, a 30% change lands near 0.5 and 60% near 0.9.
func (n *Normalizer) PhysicalScore(deltaPct float64) float64 {
	v := math.Tanh(deltaPct / n.tuning.TanhScale)
	if !util.IsFinite(v) {
		return 0
	}
	return v
}

// CompositePhysicalScore blends the three physical sub-channels. The
// vegetation delta enters sign-inverted: vegetation loss around industrial
// zones reads as more activity, not less.
func (n *Normalizer) CompositePhysicalScore(activityDelta, nightLightDelta, vegetationDelta float64) float64 {
	t := n.tuning
	v := t.ActivityWeight*n.PhysicalScore(activityDelta) +
		t.NightLightWeight*n.PhysicalScore(nightLightDelta) +
		t.VegetationWeight*n.PhysicalScore(-vegetationDelta)
	if !util.IsFinite(v) {
		return 0
	}
	return util.Clamp(v, -1, 1)
}

// NarrativeScore discounts raw sentiment by source diversity: consensus
// from an echo chamber is trusted less.
func (n *Normalizer) NarrativeScore(sentiment, diversity float64) float64 {
	v := sentiment * (0.5 + 0.5*diversity)
	if !util.IsFinite(v) {
		return 0
	}
	return util.Clamp(v, -1, 1)
}
