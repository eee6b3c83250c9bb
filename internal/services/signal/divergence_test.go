package signal

import (
	"math"
	"testing"

	"GeoPulse/internal/domain/models"
)

func TestScoreZeroWhenAligned(t *testing.T) {
	e := NewEngine(DefaultTuning())
	r := Reading{
		PhysicalScore:       0.42,
		NarrativeScore:      0.42,
		PhysicalConfidence:  0.9,
		NarrativeConfidence: 0.9,
		HypeIntensity:       80,
		HeadlineVolume:      100,
	}
	if got := e.Score(r); got != 0 {
		t.Fatalf("identical scores must yield 0, got %v", got)
	}
}

func TestScoreMonotonicInGap(t *testing.T) {
	e := NewEngine(DefaultTuning())
	prev := -1.0
	for _, narr := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		r := Reading{
			PhysicalScore:       -0.5,
			NarrativeScore:      narr,
			PhysicalConfidence:  0.8,
			NarrativeConfidence: 0.8,
			HypeIntensity:       50,
			HeadlineVolume:      100,
		}
		got := e.Score(r)
		if got <= prev {
			t.Fatalf("score not increasing with gap: %v then %v", prev, got)
		}
		prev = got
	}
}

func TestScoreHypePumpExample(t *testing.T) {
	e := NewEngine(DefaultTuning())
	r := Reading{
		PhysicalScore:       -0.55,
		NarrativeScore:      0.85,
		PhysicalConfidence:  0.9,
		NarrativeConfidence: 0.9,
		HypeIntensity:       88,
		HeadlineVolume:      150,
	}
	div, alerts := e.Compute(r)
	// |(-0.55)-0.85|/2 * 0.9 * 1.44 * 100 = 90.72
	if math.Abs(div-90.72) > 0.01 {
		t.Fatalf("expected 90.72, got %v", div)
	}
	if alerts[0].Level != models.AlertLevelCritical || alerts[0].Title != "Hype Divergence Detected" {
		t.Fatalf("expected critical hype divergence, got %+v", alerts[0])
	}
}

func TestScorePanicExample(t *testing.T) {
	e := NewEngine(DefaultTuning())
	r := Reading{
		PhysicalScore:       0.62,
		NarrativeScore:      -0.82,
		PhysicalConfidence:  0.88,
		NarrativeConfidence: 0.88,
		HypeIntensity:       72,
		HeadlineVolume:      120,
	}
	div, alerts := e.Compute(r)
	if div < 75 {
		t.Fatalf("expected critical-range divergence, got %v", div)
	}
	if alerts[0].Title != "Panic Divergence Detected" {
		t.Fatalf("expected panic divergence, got %+v", alerts[0])
	}
}

func TestScoreAlignedExample(t *testing.T) {
	e := NewEngine(DefaultTuning())
	r := Reading{
		PhysicalScore:       -0.45,
		NarrativeScore:      -0.58,
		PhysicalConfidence:  0.92,
		NarrativeConfidence: 0.92,
		HypeIntensity:       42,
		HeadlineVolume:      90,
	}
	div, alerts := e.Compute(r)
	if div >= 30 {
		t.Fatalf("expected aligned-range divergence, got %v", div)
	}
	if alerts[0].Level != models.AlertLevelInfo || alerts[0].Title != "Signals Aligned" {
		t.Fatalf("expected aligned info alert, got %+v", alerts[0])
	}
}

func TestScoreClampedTo100(t *testing.T) {
	tuning := DefaultTuning()
	tuning.HypeAmpFactor = 5
	e := NewEngine(tuning)
	m := 1.0
	r := Reading{
		PhysicalScore:       -1,
		NarrativeScore:      1,
		PhysicalConfidence:  0.95,
		NarrativeConfidence: 0.95,
		HypeIntensity:       100,
		MarketScore:         &m,
	}
	if got := e.Score(r); got != 100 {
		t.Fatalf("expected clamp to 100, got %v", got)
	}
}

func TestScoreNonFiniteInputs(t *testing.T) {
	e := NewEngine(DefaultTuning())
	r := Reading{
		PhysicalScore:       math.NaN(),
		NarrativeScore:      0.5,
		PhysicalConfidence:  0.9,
		NarrativeConfidence: 0.9,
	}
	if got := e.Score(r); got != 0 {
		t.Fatalf("non-finite inputs must yield 0, got %v", got)
	}
}

func TestMarketFactorArbitration(t *testing.T) {
	e := NewEngine(DefaultTuning())
	base := Reading{
		PhysicalScore:       -0.5,
		NarrativeScore:      0.8,
		PhysicalConfidence:  0.9,
		NarrativeConfidence: 0.9,
	}

	noMarket := e.Score(base)

	// Market siding with the physical channel: narrative is the outlier.
	m := -0.45
	withPhys := base
	withPhys.MarketScore = &m
	narrOutlier := e.Score(withPhys)

	// Market siding with the narrative channel.
	m2 := 0.75
	withNarr := base
	withNarr.MarketScore = &m2
	physOutlier := e.Score(withNarr)

	if narrOutlier <= physOutlier {
		t.Fatalf("narrative outlier should score higher: %v vs %v", narrOutlier, physOutlier)
	}
	if noMarket <= 0 && narrOutlier <= 0 {
		t.Fatalf("expected positive scores")
	}
}

func TestHypeAdvisory(t *testing.T) {
	e := NewEngine(DefaultTuning())
	r := Reading{
		PhysicalScore:       0.1,
		NarrativeScore:      0.15,
		PhysicalConfidence:  0.9,
		NarrativeConfidence: 0.9,
		HypeIntensity:       75,
		HeadlineVolume:      100,
	}
	_, alerts := e.Compute(r)
	found := false
	for _, a := range alerts {
		if a.Category == "hype" && a.Level == models.AlertLevelAdvisory {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected hype advisory at intensity 75, got %+v", alerts)
	}
}

func TestDataQualityWarning(t *testing.T) {
	e := NewEngine(DefaultTuning())
	r := Reading{
		PhysicalScore:       0.1,
		NarrativeScore:      0.1,
		PhysicalConfidence:  0.9,
		NarrativeConfidence: 0.9,
		HeadlineVolume:      3,
	}
	_, alerts := e.Compute(r)
	found := false
	for _, a := range alerts {
		if a.Category == "data_quality" && a.Level == models.AlertLevelWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected data quality warning at volume 3, got %+v", alerts)
	}

	r.HeadlineVolume = 100
	r.SourceUnavailable = true
	_, alerts = e.Compute(r)
	found = false
	for _, a := range alerts {
		if a.Category == "data_quality" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected data quality warning when source unavailable")
	}
}

func TestAlertsNeverEmpty(t *testing.T) {
	e := NewEngine(DefaultTuning())
	_, alerts := e.Compute(Reading{
		PhysicalConfidence:  0.9,
		NarrativeConfidence: 0.9,
		HeadlineVolume:      100,
	})
	if len(alerts) == 0 {
		t.Fatalf("alert list must never be empty")
	}
}
