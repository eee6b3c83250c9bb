package simulation

import (
	"math/rand"
	"sort"

	"GeoPulse/internal/domain/models"
)

const maxPlacementAttempts = 20

// regimeDuration draws a duration in days for a regime type. Supply shocks
// run longest; mean reversion resolves a little slower than the impulse
// regimes.
func regimeDuration(rng *rand.Rand, t models.RegimeType) int {
	switch t {
	case models.RegimeSupplyShock:
		return randBetween(rng, 7, 12)
	case models.RegimeMeanReversion:
		return randBetween(rng, 6, 10)
	default:
		return randBetween(rng, 5, 9)
	}
}

// pickRegimeType draws a weighted regime type from the profile weights.
// Types are visited in canonical order so the draw is reproducible.
func pickRegimeType(rng *rand.Rand, weights map[models.RegimeType]float64) models.RegimeType {
	types := make([]models.RegimeType, 0, len(weights))
	total := 0.0
	for _, t := range models.RegimeTypes() {
		if w, ok := weights[t]; ok && w > 0 {
			types = append(types, t)
			total += w
		}
	}
	if len(types) == 0 {
		return models.RegimeRealGrowth
	}
	r := rng.Float64() * total
	acc := 0.0
	for _, t := range types {
		acc += weights[t]
		if r < acc {
			return t
		}
	}
	return types[len(types)-1]
}

// scheduleRegimes places one or two non-overlapping regimes in the window.
// The first regime lands mid-window, the second late so the anchor day has
// a decent chance of being inside one. A regime that cannot find a free
// slot after a bounded number of attempts is dropped.
func scheduleRegimes(rng *rand.Rand, profile *models.RegionProfile, windowDays int, tuning Tuning) []models.Regime {
	count := 1
	if rng.Float64() < tuning.SecondRegimeProb {
		count = 2
	}

	used := make(map[int]bool)
	regimes := make([]models.Regime, 0, count)

	for i := 0; i < count; i++ {
		regimeType := pickRegimeType(rng, profile.RegimeWeights)
		duration := regimeDuration(rng, regimeType)
		if duration >= windowDays {
			duration = windowDays - 1
		}

		var lo, hi int
		if i == 0 {
			lo, hi = windowDays/6, 2*windowDays/3
		} else {
			lo, hi = 3*windowDays/5, windowDays-duration
		}
		if hi < lo {
			hi = lo
		}

		placed := false
		var start int
		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			start = randBetween(rng, lo, hi)
			if slotFree(used, start, duration) {
				markUsed(used, start, duration)
				placed = true
				break
			}
		}
		if !placed {
			continue
		}

		regimes = append(regimes, models.Regime{
			Type:      regimeType,
			StartDay:  start,
			Duration:  duration,
			Intensity: tuning.IntensityFloor + rng.Float64()*tuning.IntensitySpan,
		})
	}

	sort.Slice(regimes, func(a, b int) bool { return regimes[a].StartDay < regimes[b].StartDay })
	return regimes
}

func slotFree(used map[int]bool, start, duration int) bool {
	for d := start; d < start+duration; d++ {
		if used[d] {
			return false
		}
	}
	return true
}

func markUsed(used map[int]bool, start, duration int) {
	for d := start; d < start+duration; d++ {
		used[d] = true
	}
}

// randBetween draws an integer in [lo, hi] inclusive.
func randBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
