package simulation

import "github.com/creasty/defaults"

// Tuning holds the overridable knobs of the simulation. Zero values are
// filled from the defaults tags, matching the calibrated behavior.
type Tuning struct {
	SecondRegimeProb     float64 `yaml:"second_regime_prob" default:"0.4"`
	IntensityFloor       float64 `yaml:"intensity_floor" default:"0.5"`
	IntensitySpan        float64 `yaml:"intensity_span" default:"0.5"`
	NarrativePersistence float64 `yaml:"narrative_persistence" default:"0.7"`
	NarrativeNoiseSigma  float64 `yaml:"narrative_noise_sigma" default:"0.12"`
	VolumeSpikeProb      float64 `yaml:"volume_spike_prob" default:"0.1"`
	VolumeSpikeMult      float64 `yaml:"volume_spike_mult" default:"1.5"`
	HeadlinesPerDay      int     `yaml:"headlines_per_day" default:"5"`
	BaselineWindowDays   int     `yaml:"baseline_window_days" default:"30"`
}

// DefaultTuning returns the calibrated tuning.
func DefaultTuning() Tuning {
	var t Tuning
	defaults.MustSet(&t)
	return t
}
