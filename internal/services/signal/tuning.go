package signal

import "github.com/creasty/defaults"

// Tuning holds the fusion constants. They are calibrated empirically, so
// they stay named and overridable rather than inlined at call sites.
type Tuning struct {
	TanhScale         float64 `yaml:"tanh_scale" default:"50"`
	HypeAmpFactor     float64 `yaml:"hype_amp_factor" default:"0.5"`
	NeutralBand       float64 `yaml:"neutral_band" default:"0.1"`
	ThresholdLow      float64 `yaml:"threshold_low" default:"30"`
	ThresholdMedium   float64 `yaml:"threshold_medium" default:"55"`
	ThresholdHigh     float64 `yaml:"threshold_high" default:"75"`
	HypeAdvisoryLevel float64 `yaml:"hype_advisory_level" default:"70"`
	MinHeadlineVolume int     `yaml:"min_headline_volume" default:"5"`

	ActivityWeight   float64 `yaml:"activity_weight" default:"0.5"`
	NightLightWeight float64 `yaml:"night_light_weight" default:"0.35"`
	VegetationWeight float64 `yaml:"vegetation_weight" default:"0.15"`
}

// DefaultTuning returns the calibrated fusion tuning.
func DefaultTuning() Tuning {
	var t Tuning
	defaults.MustSet(&t)
	return t
}
