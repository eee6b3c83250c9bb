package simulation

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"GeoPulse/internal/domain/models"
	"GeoPulse/internal/services/headlines"
)

func testProfile() *models.RegionProfile {
	return &models.RegionProfile{
		ID:                "shanghai_port",
		Name:              "Shanghai, China",
		ProxyType:         "ports",
		PhysBaseline:      0.1,
		PhysVolatility:    0.08,
		WeekendMultiplier: 0.7,
		Persistence:       0.6,
		VolumeBaseline:    120,
		SentimentBias:     0.05,
		HypeTendency:      0.7,
		DiversityBaseline: 0.4,
		RegimeWeights: map[models.RegimeType]float64{
			models.RegimeHypePump:      0.35,
			models.RegimeSupplyShock:   0.20,
			models.RegimePanicSell:     0.15,
			models.RegimeRealGrowth:    0.20,
			models.RegimeMeanReversion: 0.10,
		},
	}
}

func anchorDate() time.Time {
	return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func TestRunDeterministic(t *testing.T) {
	sim := New(testProfile(), headlines.New(), DefaultTuning())
	ctx := context.Background()

	days1, regimes1, err := sim.Run(ctx, anchorDate(), 30)
	if err != nil {
		t.Fatalf("run 1: %v", err)
	}
	days2, regimes2, err := sim.Run(ctx, anchorDate(), 30)
	if err != nil {
		t.Fatalf("run 2: %v", err)
	}

	if len(regimes1) != len(regimes2) {
		t.Fatalf("regime count differs: %d vs %d", len(regimes1), len(regimes2))
	}
	for i := range regimes1 {
		if regimes1[i] != regimes2[i] {
			t.Fatalf("regime %d differs: %+v vs %+v", i, regimes1[i], regimes2[i])
		}
	}
	for i := range days1 {
		a, b := days1[i], days2[i]
		if a.PhysicalScore != b.PhysicalScore || a.NarrativeScore != b.NarrativeScore {
			t.Fatalf("day %d scores differ", i)
		}
		if a.Narrative.HeadlineVolume != b.Narrative.HeadlineVolume {
			t.Fatalf("day %d volume differs", i)
		}
		if len(a.Narrative.Headlines) != len(b.Narrative.Headlines) {
			t.Fatalf("day %d headline count differs", i)
		}
		for j := range a.Narrative.Headlines {
			if a.Narrative.Headlines[j].Title != b.Narrative.Headlines[j].Title {
				t.Fatalf("day %d headline %d differs", i, j)
			}
		}
	}
}

type failingHeadlines struct{}

func (failingHeadlines) Generate(int64, string, time.Time, float64, *models.Regime, int) ([]models.Headline, error) {
	return nil, errors.New("upstream text service unavailable")
}

func TestRunHeadlineFailureDegrades(t *testing.T) {
	ctx := context.Background()

	days, _, err := New(testProfile(), failingHeadlines{}, DefaultTuning()).Run(ctx, anchorDate(), 30)
	if err != nil {
		t.Fatalf("run with failing generator: %v", err)
	}
	if len(days) != 30 {
		t.Fatalf("expected 30 days, got %d", len(days))
	}
	for i, d := range days {
		if len(d.Narrative.Headlines) != 0 {
			t.Fatalf("day %d should have no headlines, got %d", i, len(d.Narrative.Headlines))
		}
	}

	// the numeric series must not depend on the text generator
	ref, _, err := New(testProfile(), headlines.New(), DefaultTuning()).Run(ctx, anchorDate(), 30)
	if err != nil {
		t.Fatalf("reference run: %v", err)
	}
	for i := range days {
		if days[i].PhysicalScore != ref[i].PhysicalScore || days[i].NarrativeScore != ref[i].NarrativeScore {
			t.Fatalf("day %d scores differ from reference run", i)
		}
		if days[i].Narrative.HypeIntensity != ref[i].Narrative.HypeIntensity {
			t.Fatalf("day %d hype differs from reference run", i)
		}
	}
}

func TestRunWindowShape(t *testing.T) {
	sim := New(testProfile(), headlines.New(), DefaultTuning())
	days, _, err := sim.Run(context.Background(), anchorDate(), 30)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(days) != 30 {
		t.Fatalf("expected 30 days, got %d", len(days))
	}
	if !days[len(days)-1].Date.Equal(anchorDate()) {
		t.Fatalf("last day should be the anchor, got %v", days[len(days)-1].Date)
	}
	for i, d := range days {
		if d.DayOffset != i {
			t.Fatalf("day %d offset %d", i, d.DayOffset)
		}
		if i > 0 && !d.Date.After(days[i-1].Date) {
			t.Fatalf("dates not ascending at %d", i)
		}
	}
}

func TestRunBounds(t *testing.T) {
	// High volatility exercises the clamps.
	p := testProfile()
	p.PhysVolatility = 0.5
	p.HypeTendency = 1.0
	sim := New(p, headlines.New(), DefaultTuning())

	days, _, err := sim.Run(context.Background(), anchorDate(), 90)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, d := range days {
		if d.PhysicalScore < -1 || d.PhysicalScore > 1 {
			t.Fatalf("day %d physical score %v out of range", i, d.PhysicalScore)
		}
		if d.NarrativeScore < -1 || d.NarrativeScore > 1 {
			t.Fatalf("day %d narrative score %v out of range", i, d.NarrativeScore)
		}
		if c := d.Physical.Confidence; c < 0.3 || c > 0.95 {
			t.Fatalf("day %d physical confidence %v out of range", i, c)
		}
		if c := d.Narrative.Confidence; c < 0.3 || c > 0.95 {
			t.Fatalf("day %d narrative confidence %v out of range", i, c)
		}
		if v := d.Narrative.HeadlineVolume; v < 10 || v > 300 {
			t.Fatalf("day %d volume %d out of range", i, v)
		}
		if h := d.Narrative.HypeIntensity; h < 0 || h > 100 {
			t.Fatalf("day %d hype %v out of range", i, h)
		}
		if dv := d.Narrative.SourceDiversity; dv < 0.2 || dv > 0.95 {
			t.Fatalf("day %d diversity %v out of range", i, dv)
		}
		if a := d.Physical.AnomalyStrength; a < 0 || a > 1 {
			t.Fatalf("day %d anomaly %v out of range", i, a)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	sim := New(testProfile(), headlines.New(), DefaultTuning())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := sim.Run(ctx, anchorDate(), 30); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestSeedForVariesByRegionAndDate(t *testing.T) {
	a := SeedFor("shanghai_port", anchorDate())
	b := SeedFor("la_port", anchorDate())
	c := SeedFor("shanghai_port", anchorDate().AddDate(0, 0, 1))
	if a == b {
		t.Fatalf("different regions share a seed")
	}
	if a == c {
		t.Fatalf("different dates share a seed")
	}
	if a != SeedFor("shanghai_port", anchorDate()) {
		t.Fatalf("seed not stable")
	}
}

func TestTextSeedVariesByDay(t *testing.T) {
	seed := SeedFor("shanghai_port", anchorDate())
	seen := make(map[int64]bool)
	for d := 0; d < 30; d++ {
		ts := TextSeed(seed, d)
		if seen[ts] {
			t.Fatalf("duplicate text seed at day %d", d)
		}
		seen[ts] = true
	}
}

func TestScheduleRegimesNonOverlapping(t *testing.T) {
	p := testProfile()
	tuning := DefaultTuning()
	for trial := 0; trial < 200; trial++ {
		rng := rand.New(rand.NewSource(int64(trial)))
		regimes := scheduleRegimes(rng, p, 30, tuning)
		if len(regimes) < 1 || len(regimes) > 2 {
			t.Fatalf("trial %d: expected 1 or 2 regimes, got %d", trial, len(regimes))
		}
		used := make(map[int]bool)
		for _, r := range regimes {
			if !r.Type.IsValid() {
				t.Fatalf("trial %d: invalid regime type %q", trial, r.Type)
			}
			// A regime may overhang the window edge; its tail simply
			// never activates.
			if r.StartDay < 0 || r.StartDay >= 30 {
				t.Fatalf("trial %d: regime starts outside window: %+v", trial, r)
			}
			if r.Intensity < tuning.IntensityFloor || r.Intensity > tuning.IntensityFloor+tuning.IntensitySpan {
				t.Fatalf("trial %d: intensity %v out of range", trial, r.Intensity)
			}
			for d := r.StartDay; d < r.StartDay+r.Duration; d++ {
				if used[d] {
					t.Fatalf("trial %d: overlapping regimes at day %d", trial, d)
				}
				used[d] = true
			}
		}
		for i := 1; i < len(regimes); i++ {
			if regimes[i].StartDay < regimes[i-1].StartDay {
				t.Fatalf("trial %d: regimes not sorted", trial)
			}
		}
	}
}

func TestRegimeDurationRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		if d := regimeDuration(rng, models.RegimeSupplyShock); d < 7 || d > 12 {
			t.Fatalf("supply shock duration %d", d)
		}
		if d := regimeDuration(rng, models.RegimeMeanReversion); d < 6 || d > 10 {
			t.Fatalf("mean reversion duration %d", d)
		}
		if d := regimeDuration(rng, models.RegimeHypePump); d < 5 || d > 9 {
			t.Fatalf("hype pump duration %d", d)
		}
	}
}

func TestPickRegimeTypeRespectsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	weights := map[models.RegimeType]float64{models.RegimePanicSell: 1}
	for i := 0; i < 50; i++ {
		if got := pickRegimeType(rng, weights); got != models.RegimePanicSell {
			t.Fatalf("expected PANIC_SELL, got %s", got)
		}
	}
	if got := pickRegimeType(rng, map[models.RegimeType]float64{}); got != models.RegimeRealGrowth {
		t.Fatalf("empty weights should fall back to REAL_GROWTH, got %s", got)
	}
}

func TestRegimeCurvesDiverge(t *testing.T) {
	r := &models.Regime{Type: models.RegimeHypePump, StartDay: 0, Duration: 7, Intensity: 1}
	phys := physicalRegimeEffect(r, 0.5, 0)
	sent, hype := narrativeRegimeEffect(r, 0.5, 0)
	if phys >= 0 {
		t.Fatalf("hype pump should drag the physical channel, got %v", phys)
	}
	if sent <= 0 || hype <= 0 {
		t.Fatalf("hype pump should lift the narrative channel, got %v/%v", sent, hype)
	}

	r = &models.Regime{Type: models.RegimeSupplyShock, StartDay: 0, Duration: 10, Intensity: 1}
	early := physicalRegimeEffect(r, 0.1, 0)
	late := physicalRegimeEffect(r, 0.9, 0)
	if early >= 0 {
		t.Fatalf("supply shock should start with a drop, got %v", early)
	}
	if late <= early {
		t.Fatalf("supply shock should recover, early %v late %v", early, late)
	}
}
