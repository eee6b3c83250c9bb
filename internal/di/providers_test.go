package di

import (
	"testing"

	"GeoPulse/internal/services/signal"
	"GeoPulse/internal/services/simulation"
	"GeoPulse/pkg/config"
)

func f64(v float64) *float64 { return &v }

func intp(v int) *int { return &v }

func TestProvideSignalTuningZeroOverride(t *testing.T) {
	var cfg config.Config
	cfg.Signal.NeutralBand = f64(0)
	cfg.Signal.ThresholdLow = f64(0)

	tuning := ProvideSignalTuning(&cfg)
	if tuning.NeutralBand != 0 {
		t.Fatalf("neutral_band: 0 should override the default, got %v", tuning.NeutralBand)
	}
	if tuning.ThresholdLow != 0 {
		t.Fatalf("threshold_low: 0 should override the default, got %v", tuning.ThresholdLow)
	}

	def := signal.DefaultTuning()
	if tuning.TanhScale != def.TanhScale {
		t.Fatalf("unset tanh_scale should keep the default %v, got %v", def.TanhScale, tuning.TanhScale)
	}
	if tuning.ThresholdHigh != def.ThresholdHigh {
		t.Fatalf("unset threshold_high should keep the default %v, got %v", def.ThresholdHigh, tuning.ThresholdHigh)
	}
}

func TestProvideSignalTuningSetOverride(t *testing.T) {
	var cfg config.Config
	cfg.Signal.TanhScale = f64(25)
	cfg.Signal.ThresholdHigh = f64(90)

	tuning := ProvideSignalTuning(&cfg)
	if tuning.TanhScale != 25 {
		t.Fatalf("tanh_scale override lost: %v", tuning.TanhScale)
	}
	if tuning.ThresholdHigh != 90 {
		t.Fatalf("threshold_high override lost: %v", tuning.ThresholdHigh)
	}
}

func TestProvideSimulationTuningZeroOverride(t *testing.T) {
	var cfg config.Config
	cfg.Simulation.SecondRegimeProb = f64(0)
	cfg.Simulation.HeadlinesPerDay = intp(0)

	tuning := ProvideSimulationTuning(&cfg)
	if tuning.SecondRegimeProb != 0 {
		t.Fatalf("second_regime_prob: 0 should override the default, got %v", tuning.SecondRegimeProb)
	}
	if tuning.HeadlinesPerDay != 0 {
		t.Fatalf("headlines_per_day: 0 should override the default, got %v", tuning.HeadlinesPerDay)
	}

	def := simulation.DefaultTuning()
	if tuning.NarrativePersistence != def.NarrativePersistence {
		t.Fatalf("unset narrative_persistence should keep the default %v, got %v",
			def.NarrativePersistence, tuning.NarrativePersistence)
	}
}
