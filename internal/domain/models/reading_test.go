package models

import "testing"

func validReading() RawReading {
	return RawReading{
		RegionID:        "suez_logistics",
		ActivityDelta:   -35,
		NightLightDelta: -20,
		VegetationDelta: 5,
		Sentiment:       -0.4,
		Diversity:       0.7,
		HeadlineVolume:  140,
		Hype:            55,
		Timestamp:       1750000000,
	}
}

func TestRawReadingValidateOK(t *testing.T) {
	r := validReading()
	if err := r.Validate(); err != nil {
		t.Fatalf("valid reading rejected: %v", err)
	}
}

func TestRawReadingValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RawReading)
	}{
		{"empty region", func(r *RawReading) { r.RegionID = "" }},
		{"zero timestamp", func(r *RawReading) { r.Timestamp = 0 }},
		{"sentiment high", func(r *RawReading) { r.Sentiment = 1.2 }},
		{"sentiment low", func(r *RawReading) { r.Sentiment = -1.2 }},
		{"diversity high", func(r *RawReading) { r.Diversity = 1.5 }},
		{"negative volume", func(r *RawReading) { r.HeadlineVolume = -1 }},
		{"hype high", func(r *RawReading) { r.Hype = 120 }},
	}
	for _, tc := range cases {
		r := validReading()
		tc.mutate(&r)
		if err := r.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
	var nilReading *RawReading
	if err := nilReading.Validate(); err == nil {
		t.Fatalf("nil reading: expected error")
	}
}

func TestTrendFor(t *testing.T) {
	if got := TrendFor(0.5); got != "bullish" {
		t.Fatalf("expected bullish, got %s", got)
	}
	if got := TrendFor(-0.5); got != "bearish" {
		t.Fatalf("expected bearish, got %s", got)
	}
	if got := TrendFor(0.05); got != "neutral" {
		t.Fatalf("expected neutral, got %s", got)
	}
}
