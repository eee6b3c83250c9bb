package signal

import (
	"fmt"

	"GeoPulse/internal/domain/models"
)

// classify maps a reading and its divergence index onto a ranked alert
// list. The list is never empty.
func (e *Engine) classify(r Reading, div float64) []models.Alert {
	t := e.tuning
	alerts := make([]models.Alert, 0, 3)

	phys, narr := r.PhysicalScore, r.NarrativeScore
	band := t.NeutralBand

	switch {
	case div >= t.ThresholdHigh:
		switch {
		case narr > band && phys < -band:
			alerts = append(alerts, models.Alert{
				Level:    models.AlertLevelCritical,
				Category: "divergence",
				Title:    "Hype Divergence Detected",
				Message: fmt.Sprintf("Bullish narrative (%+.2f) contradicts physical contraction (%+.2f). Potential narrative-driven mispricing.",
					narr, phys),
			})
		case narr < -band && phys > band:
			alerts = append(alerts, models.Alert{
				Level:    models.AlertLevelCritical,
				Category: "divergence",
				Title:    "Panic Divergence Detected",
				Message: fmt.Sprintf("Bearish narrative (%+.2f) contradicts physical expansion (%+.2f). Potential overreaction.",
					narr, phys),
			})
		default:
			alerts = append(alerts, models.Alert{
				Level:    models.AlertLevelCritical,
				Category: "divergence",
				Title:    "Extreme Magnitude Mismatch",
				Message: fmt.Sprintf("Signals point the same way but disagree on magnitude. Divergence %.0f/100; check channel calibration.",
					div),
			})
		}
	case div >= t.ThresholdMedium:
		alerts = append(alerts, models.Alert{
			Level:    models.AlertLevelWarning,
			Category: "divergence",
			Title:    "Elevated Divergence",
			Message:  "Moderate disagreement between signals. Worth monitoring for trend confirmation.",
		})
	case div >= t.ThresholdLow:
		alerts = append(alerts, models.Alert{
			Level:    models.AlertLevelWatch,
			Category: "divergence",
			Title:    "Divergence Watch",
			Message:  "Mild disagreement between signals, within normal variation.",
		})
	default:
		alerts = append(alerts, models.Alert{
			Level:    models.AlertLevelInfo,
			Category: "divergence",
			Title:    "Signals Aligned",
			Message:  "Physical activity and market narrative are telling a consistent story.",
		})
	}

	if r.HypeIntensity >= t.HypeAdvisoryLevel {
		alerts = append(alerts, models.Alert{
			Level:    models.AlertLevelAdvisory,
			Category: "hype",
			Title:    "High Hype Detected",
			Message: fmt.Sprintf("News hype intensity at %.0f%%. Potential coordinated narrative or viral spread.",
				r.HypeIntensity),
		})
	}

	if r.SourceUnavailable || r.HeadlineVolume < t.MinHeadlineVolume {
		alerts = append(alerts, models.Alert{
			Level:    models.AlertLevelWarning,
			Category: "data_quality",
			Title:    "Limited Data Coverage",
			Message:  "One or more upstream data sources are thin or unavailable; treat scores with caution.",
		})
	}

	if len(alerts) == 0 {
		alerts = append(alerts, models.Alert{
			Level:    models.AlertLevelOK,
			Category: "status",
			Title:    "Monitoring",
			Message:  "No findings. Signals within normal ranges.",
		})
	}
	return alerts
}
