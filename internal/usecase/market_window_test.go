package usecase

import (
	"fmt"
	"math"
	"testing"
)

func TestPriceWindowSameDayUpdatesClose(t *testing.T) {
	w := newPriceWindow(7)
	w.Observe("2025-06-15", 100)
	w.Observe("2025-06-15", 104)
	w.Observe("2025-06-15", 102)

	last, ok := w.Last()
	if !ok {
		t.Fatalf("expected a price")
	}
	if last != 102 {
		t.Fatalf("last = %v, want 102", last)
	}

	day, week := w.ChangePct()
	if math.Abs(day-2.0) > 1e-6 {
		t.Fatalf("day change = %v, want 2", day)
	}
	// a single tracked day: weekly change equals daily change
	if math.Abs(week-day) > 1e-9 {
		t.Fatalf("week change = %v, want %v", week, day)
	}
}

func TestPriceWindowEviction(t *testing.T) {
	w := newPriceWindow(3)
	for i := 0; i < 5; i++ {
		w.Observe(fmt.Sprintf("2025-06-%02d", 10+i), float64(100+i))
	}
	if len(w.entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(w.entries))
	}
	if w.entries[0].day != "2025-06-12" {
		t.Fatalf("oldest day = %s, want 2025-06-12", w.entries[0].day)
	}
	last, _ := w.Last()
	if last != 104 {
		t.Fatalf("last = %v, want 104", last)
	}
}

func TestPriceWindowWeeklyChange(t *testing.T) {
	w := newPriceWindow(7)
	w.Observe("2025-06-10", 100)
	w.Observe("2025-06-11", 101)
	w.Observe("2025-06-12", 105)
	w.Observe("2025-06-12", 110)

	day, week := w.ChangePct()
	if math.Abs(day-(110-105)/105.0*100) > 1e-6 {
		t.Fatalf("day change = %v", day)
	}
	if math.Abs(week-10.0) > 1e-6 {
		t.Fatalf("week change = %v, want 10", week)
	}
}

func TestPriceWindowEmpty(t *testing.T) {
	w := newPriceWindow(0) // falls back to the default length
	if w.maxDays != 7 {
		t.Fatalf("maxDays = %d, want 7", w.maxDays)
	}
	if _, ok := w.Last(); ok {
		t.Fatalf("expected no price")
	}
	day, week := w.ChangePct()
	if day != 0 || week != 0 {
		t.Fatalf("changes = %v, %v, want zeros", day, week)
	}
}

func TestPctChangeZeroReference(t *testing.T) {
	if got := pctChange(0, 50); got != 0 {
		t.Fatalf("pctChange(0, 50) = %v, want 0", got)
	}
	if got := pctChange(100, 100); got != 0 {
		t.Fatalf("pctChange(100, 100) = %v, want 0", got)
	}
}
