package models

import (
	"fmt"
	"math"
)

// RegionProfile is the immutable per-region configuration driving signal
// generation. Created once from configuration, read-only afterward.
type RegionProfile struct {
	ID        string
	Name      string
	ProxyType string // ports, manufacturing, oil_storage, night_lights, parking_lots

	// Physical channel parameters.
	PhysBaseline      float64 // mean activity level [-1, 1]
	PhysVolatility    float64 // daily noise std dev
	WeekendMultiplier float64 // weekend activity multiplier (0.7 = 70% of weekday)
	Persistence       float64 // AR(1) coefficient [0, 1]

	// Narrative channel parameters.
	VolumeBaseline    int     // expected headlines/day
	SentimentBias     float64 // regional sentiment tendency
	HypeTendency      float64 // propensity for viral/coordinated coverage [0, 1]
	DiversityBaseline float64 // source diversity baseline [0, 1]

	// Regime selection weights. Must sum to a positive total; need not sum to 1.
	RegimeWeights map[RegimeType]float64

	// Optional market symbol mapped to this region (empty = no market overlay).
	MarketSymbol string
	MarketName   string
}

// Validate checks profile invariants. Non-finite or out-of-range parameters
// are construction errors, never silently accepted.
func (p *RegionProfile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile: id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("profile %s: name is required", p.ID)
	}
	for name, v := range map[string]float64{
		"phys_baseline":      p.PhysBaseline,
		"phys_volatility":    p.PhysVolatility,
		"weekend_multiplier": p.WeekendMultiplier,
		"persistence":        p.Persistence,
		"sentiment_bias":     p.SentimentBias,
		"hype_tendency":      p.HypeTendency,
		"diversity_baseline": p.DiversityBaseline,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("profile %s: %s is not finite", p.ID, name)
		}
	}
	if p.PhysBaseline < -1 || p.PhysBaseline > 1 {
		return fmt.Errorf("profile %s: phys_baseline %.3f outside [-1, 1]", p.ID, p.PhysBaseline)
	}
	if p.PhysVolatility < 0 {
		return fmt.Errorf("profile %s: phys_volatility must be >= 0", p.ID)
	}
	if p.Persistence < 0 || p.Persistence > 1 {
		return fmt.Errorf("profile %s: persistence %.3f outside [0, 1]", p.ID, p.Persistence)
	}
	if p.HypeTendency < 0 || p.HypeTendency > 1 {
		return fmt.Errorf("profile %s: hype_tendency %.3f outside [0, 1]", p.ID, p.HypeTendency)
	}
	if p.DiversityBaseline < 0 || p.DiversityBaseline > 1 {
		return fmt.Errorf("profile %s: diversity_baseline %.3f outside [0, 1]", p.ID, p.DiversityBaseline)
	}
	if p.VolumeBaseline <= 0 {
		return fmt.Errorf("profile %s: volume_baseline must be positive", p.ID)
	}
	if len(p.RegimeWeights) == 0 {
		return fmt.Errorf("profile %s: regime_weights cannot be empty", p.ID)
	}
	total := 0.0
	for t, w := range p.RegimeWeights {
		if !t.IsValid() {
			return fmt.Errorf("profile %s: unknown regime type %q", p.ID, t)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return fmt.Errorf("profile %s: regime weight for %s is invalid", p.ID, t)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("profile %s: regime weights must sum to a positive total", p.ID)
	}
	return nil
}
