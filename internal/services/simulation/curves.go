package simulation

import "GeoPulse/internal/domain/models"

// Regime response curves. Each regime shifts the two channels differently,
// which is what makes the channels diverge in the first place.

// physicalRegimeEffect returns the additive shift a regime applies to the
// physical channel on a given day. state is the current AR(1) state, used
// by mean reversion to pull toward baseline.
func physicalRegimeEffect(regime *models.Regime, progress, state float64) float64 {
	if regime == nil {
		return 0
	}
	intensity := regime.Intensity

	switch regime.Type {
	case models.RegimeHypePump:
		// Ground truth stays flat or slips while the story runs hot.
		return -0.15 * intensity
	case models.RegimeSupplyShock:
		// Sharp initial drop, then a partial recovery.
		if progress < 0.3 {
			return -0.6 * intensity * (1 - progress/0.3)
		}
		recovery := (progress - 0.3) / 0.7
		return -0.6 * intensity * (1 - recovery*0.7)
	case models.RegimePanicSell:
		// Reality is not as bad as the headlines.
		return 0.1 * intensity
	case models.RegimeRealGrowth:
		return 0.35 * intensity
	case models.RegimeMeanReversion:
		return -state * 0.3 * progress * intensity
	}
	return 0
}

// narrativeRegimeEffect returns the sentiment shift and hype boost a regime
// applies to the narrative channel on a given day.
func narrativeRegimeEffect(regime *models.Regime, progress, state float64) (sentimentMod, hypeBoost float64) {
	if regime == nil {
		return 0, 0
	}
	intensity := regime.Intensity

	switch regime.Type {
	case models.RegimeHypePump:
		return 0.5 * intensity, 40 * intensity
	case models.RegimeSupplyShock:
		// News lags the disruption, then catches up.
		if progress < 0.25 {
			return -0.1 * intensity, 10 * intensity
		}
		catchUp := (progress - 0.25) / 0.5
		if catchUp > 1 {
			catchUp = 1
		}
		return -0.45 * intensity * catchUp, 30 * intensity * catchUp
	case models.RegimePanicSell:
		return -0.55 * intensity, 25 * intensity
	case models.RegimeRealGrowth:
		return 0.25 * intensity, 5 * intensity
	case models.RegimeMeanReversion:
		return -state * 0.4 * progress * intensity, -10 * intensity
	}
	return 0, 0
}
