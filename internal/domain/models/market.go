package models

import "time"

// Quote is a single realtime market tick for a tracked symbol.
type Quote struct {
	Symbol    string
	Price     float64
	Volume    float64
	Timestamp time.Time
}

// MarketSnapshot is the market overlay for a region's feed: the current
// state of the instrument that proxies the region's economic exposure.
type MarketSnapshot struct {
	Symbol         string
	Name           string
	Price          float64
	Change1DPct    float64
	Change1WPct    float64
	SignalStrength float64 // change_1w / 10, clamped to [-1, 1]
	Trend          string  // bullish | bearish | neutral
	Derived        bool    // true when synthesized, not from a live source
	AsOf           time.Time
}

const marketTrendBand = 0.1

// TrendFor maps a signal strength onto a trend label.
func TrendFor(strength float64) string {
	switch {
	case strength > marketTrendBand:
		return "bullish"
	case strength < -marketTrendBand:
		return "bearish"
	default:
		return "neutral"
	}
}
