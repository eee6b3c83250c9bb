package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestParseDay(t *testing.T) {
	got, ok := ParseDay("2025-03-15")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Format(DayLayout) != "2025-03-15" {
		t.Fatalf("unexpected day %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestParseDayFromTimestamp(t *testing.T) {
	got, ok := ParseDay("2025-03-15T18:30:00Z")
	if !ok {
		t.Fatalf("expected ok")
	}
	if DayKey(got) != "2025-03-15" {
		t.Fatalf("expected truncation to day, got %v", got)
	}
}

func TestParseDayDefault(t *testing.T) {
	def := time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC)
	got := ParseDayDefault("not-a-day", def)
	if DayKey(got) != "2025-03-15" {
		t.Fatalf("expected default day, got %v", got)
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 3, 15, 23, 59, 59, 0, time.UTC)
	got := StartOfDay(in)
	if got.Hour() != 0 || got.Day() != 15 {
		t.Fatalf("unexpected start of day %v", got)
	}
}

func TestIsWeekend(t *testing.T) {
	sat := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	mon := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	if !IsWeekend(sat) {
		t.Fatalf("saturday should be weekend")
	}
	if IsWeekend(mon) {
		t.Fatalf("monday should not be weekend")
	}
}
