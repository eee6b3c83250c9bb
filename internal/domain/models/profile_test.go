package models

import (
	"math"
	"testing"
)

func validProfile() RegionProfile {
	return RegionProfile{
		ID:                "la_port",
		Name:              "Port of Los Angeles",
		ProxyType:         "ports",
		PhysBaseline:      0.05,
		PhysVolatility:    0.06,
		WeekendMultiplier: 0.75,
		Persistence:       0.5,
		VolumeBaseline:    80,
		SentimentBias:     0.1,
		HypeTendency:      0.3,
		DiversityBaseline: 0.8,
		RegimeWeights: map[RegimeType]float64{
			RegimeRealGrowth: 1,
		},
	}
}

func TestProfileValidateOK(t *testing.T) {
	p := validProfile()
	if err := p.Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
}

func TestProfileValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegionProfile)
	}{
		{"empty id", func(p *RegionProfile) { p.ID = "" }},
		{"empty name", func(p *RegionProfile) { p.Name = "" }},
		{"baseline out of range", func(p *RegionProfile) { p.PhysBaseline = 1.5 }},
		{"negative volatility", func(p *RegionProfile) { p.PhysVolatility = -0.1 }},
		{"persistence out of range", func(p *RegionProfile) { p.Persistence = 1.2 }},
		{"nan bias", func(p *RegionProfile) { p.SentimentBias = math.NaN() }},
		{"hype out of range", func(p *RegionProfile) { p.HypeTendency = -0.2 }},
		{"diversity out of range", func(p *RegionProfile) { p.DiversityBaseline = 2 }},
		{"zero volume", func(p *RegionProfile) { p.VolumeBaseline = 0 }},
		{"no weights", func(p *RegionProfile) { p.RegimeWeights = nil }},
		{"unknown regime", func(p *RegionProfile) {
			p.RegimeWeights = map[RegimeType]float64{"VIBE_SHIFT": 1}
		}},
		{"negative weight", func(p *RegionProfile) {
			p.RegimeWeights = map[RegimeType]float64{RegimeHypePump: -1}
		}},
		{"zero total weight", func(p *RegionProfile) {
			p.RegimeWeights = map[RegimeType]float64{RegimeHypePump: 0}
		}},
	}
	for _, tc := range cases {
		p := validProfile()
		tc.mutate(&p)
		if err := p.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestRegimeActiveAndProgress(t *testing.T) {
	r := Regime{Type: RegimeHypePump, StartDay: 10, Duration: 5, Intensity: 0.8}
	if r.IsActive(9) || !r.IsActive(10) || !r.IsActive(14) || r.IsActive(15) {
		t.Fatalf("activity window wrong")
	}
	if got := r.Progress(10); got != 0 {
		t.Fatalf("progress at start should be 0, got %v", got)
	}
	if got := r.Progress(12); got != 0.4 {
		t.Fatalf("mid progress: got %v", got)
	}
	if got := r.Progress(20); got != 0 {
		t.Fatalf("outside regime progress should be 0, got %v", got)
	}
}

func TestRegimeTypeIsValid(t *testing.T) {
	for _, rt := range RegimeTypes() {
		if !rt.IsValid() {
			t.Fatalf("%s should be valid", rt)
		}
	}
	if RegimeType("GROUNDHOG_DAY").IsValid() {
		t.Fatalf("unknown type accepted")
	}
}
