package simulation

import (
	"fmt"
	"hash/fnv"
	"time"

	"GeoPulse/pkg/util"
)

// SeedFor derives the deterministic PRNG seed for a region and anchor date.
// Same region + same date always yields the same seed.
func SeedFor(regionID string, anchor time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%s", regionID, anchor.Format(util.DayLayout))
	return int64(h.Sum64())
}

// TextSeed derives a per-day seed for headline text generation. It is
// independent of the numeric stream, so text templates can change without
// perturbing the simulated series.
func TextSeed(seed int64, dayOffset int) int64 {
	x := uint64(seed) ^ (uint64(dayOffset)+1)*0x9E3779B97F4A7C15
	x ^= x >> 33
	x *= 0xFF51AFD7ED558CCD
	x ^= x >> 33
	return int64(x)
}
