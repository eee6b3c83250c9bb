package repository

// Simulation window bounds in days.
const (
	MinWindowDays     = 7
	MaxWindowDays     = 90
	DefaultWindowDays = 30
)

// IsValidWindow returns true if days is a supported window length.
func IsValidWindow(days int) bool {
	return days >= MinWindowDays && days <= MaxWindowDays
}

// NormalizeWindow clamps days into the supported range; non-positive
// values fall back to the default.
func NormalizeWindow(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	if days < MinWindowDays {
		return MinWindowDays
	}
	if days > MaxWindowDays {
		return MaxWindowDays
	}
	return days
}
