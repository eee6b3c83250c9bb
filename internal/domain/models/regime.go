package models

// RegimeType is the closed set of event regimes that bend channel behavior
// away from steady-state mean reversion.
type RegimeType string

const (
	RegimeHypePump      RegimeType = "HYPE_PUMP"
	RegimeSupplyShock   RegimeType = "SUPPLY_SHOCK"
	RegimePanicSell     RegimeType = "PANIC_SELL"
	RegimeRealGrowth    RegimeType = "REAL_GROWTH"
	RegimeMeanReversion RegimeType = "MEAN_REVERSION"
)

// RegimeTypes lists every supported regime type in a stable order.
func RegimeTypes() []RegimeType {
	return []RegimeType{
		RegimeHypePump,
		RegimeSupplyShock,
		RegimePanicSell,
		RegimeRealGrowth,
		RegimeMeanReversion,
	}
}

// IsValid reports whether t is one of the closed regime variants.
func (t RegimeType) IsValid() bool {
	switch t {
	case RegimeHypePump, RegimeSupplyShock, RegimePanicSell, RegimeRealGrowth, RegimeMeanReversion:
		return true
	default:
		return false
	}
}

// Regime is a scheduled time window during which signal behavior deviates
// from baseline. Immutable once generated for a run.
type Regime struct {
	Type      RegimeType
	StartDay  int     // day offset from the start of the window
	Duration  int     // days
	Intensity float64 // 0-1 strength of the regime effect
}

// IsActive reports whether the regime covers the given day offset.
func (r Regime) IsActive(day int) bool {
	return r.StartDay <= day && day < r.StartDay+r.Duration
}

// Progress returns how far through the regime the day is, in [0, 1).
// Returns 0 for days outside the regime.
func (r Regime) Progress(day int) float64 {
	if !r.IsActive(day) || r.Duration <= 0 {
		return 0
	}
	return float64(day-r.StartDay) / float64(r.Duration)
}
