package models

import "time"

// Headline is a single illustrative news item attached to a day's narrative
// channel. Informational only; it feeds nothing back into the numeric model.
type Headline struct {
	Title     string
	Source    string
	Date      string
	Sentiment float64
}

// PhysicalRaw carries the raw satellite-proxy channel for a day.
type PhysicalRaw struct {
	ProxyType          string
	ActivityDeltaPct   float64
	NightLightDeltaPct float64
	VegetationDeltaPct float64
	Confidence         float64
	AnomalyStrength    float64
	BaselineWindowDays int
}

// NarrativeRaw carries the raw news-sentiment channel for a day.
type NarrativeRaw struct {
	SentimentScore  float64
	HypeIntensity   float64
	HeadlineVolume  int
	DuplicateRatio  float64
	PumpLexiconRate float64
	SourceDiversity float64
	Confidence      float64
	Headlines       []Headline
}

// DayRecord is the per-day output unit of a simulation run.
// Invariants: PhysicalScore and NarrativeScore in [-1, 1],
// DivergenceScore in [0, 100], HeadlineVolume >= 0.
type DayRecord struct {
	Date      time.Time
	DayOffset int

	PhysicalScore   float64
	NarrativeScore  float64
	DivergenceScore float64

	Physical  PhysicalRaw
	Narrative NarrativeRaw

	Regime *Regime // nil when the day is in baseline state
}

// RegionFeed is the full intelligence feed for one region over one window.
type RegionFeed struct {
	RegionID    string
	RegionName  string
	AnchorDate  time.Time
	WindowDays  int
	GeneratedAt time.Time

	Days    []DayRecord
	Regimes []Regime

	// Derived from the most recent day.
	Divergence float64
	Alerts     []Alert

	Market *MarketSnapshot // present only when requested and available
}

// Latest returns the most recent day record, or nil for an empty feed.
func (f *RegionFeed) Latest() *DayRecord {
	if len(f.Days) == 0 {
		return nil
	}
	return &f.Days[len(f.Days)-1]
}
