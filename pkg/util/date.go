package util

import (
    "strconv"
    "time"
)

// DayLayout is the wire format for anchor dates and per-day record dates.
const DayLayout = "2006-01-02"

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// ParseDay parses a YYYY-MM-DD day, also accepting full RFC3339 stamps
// by truncating to midnight UTC. Returns (t, true) if any worked.
func ParseDay(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(DayLayout, s); err == nil {
        return t, true
    }
    if t, ok := ParseTime(s); ok {
        return StartOfDay(t), true
    }
    return time.Time{}, false
}

// ParseDayDefault parses a day or returns default if empty/invalid.
func ParseDayDefault(s string, def time.Time) time.Time {
    if t, ok := ParseDay(s); ok {
        return t
    }
    return StartOfDay(def)
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
    wd := t.Weekday()
    return wd == time.Saturday || wd == time.Sunday
}

// DayKey formats t as YYYY-MM-DD for cache keys and wire output.
func DayKey(t time.Time) string {
    return t.UTC().Format(DayLayout)
}
