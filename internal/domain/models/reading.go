package models

import "fmt"

// RawReading is an externally sourced raw observation for a region,
// consumed from the readings topic and fused through the live
// normalize/divergence path.
type RawReading struct {
	RegionID        string  `json:"region_id"`
	ActivityDelta   float64 `json:"activity_delta"`
	NightLightDelta float64 `json:"nightlight_delta"`
	VegetationDelta float64 `json:"vegetation_delta"`
	Sentiment       float64 `json:"sentiment"`
	Diversity       float64 `json:"diversity"`
	HeadlineVolume  int     `json:"headline_volume"`
	Hype            float64 `json:"hype"`
	Timestamp       int64   `json:"t"`
}

// Validate rejects readings that cannot be fused.
func (r *RawReading) Validate() error {
	if r == nil {
		return fmt.Errorf("reading nil")
	}
	if r.RegionID == "" {
		return fmt.Errorf("region_id empty")
	}
	if r.Timestamp <= 0 {
		return fmt.Errorf("timestamp invalid")
	}
	if r.Sentiment < -1 || r.Sentiment > 1 {
		return fmt.Errorf("sentiment out of range")
	}
	if r.Diversity < 0 || r.Diversity > 1 {
		return fmt.Errorf("diversity out of range")
	}
	if r.HeadlineVolume < 0 {
		return fmt.Errorf("negative headline volume")
	}
	if r.Hype < 0 || r.Hype > 100 {
		return fmt.Errorf("hype out of range")
	}
	return nil
}
