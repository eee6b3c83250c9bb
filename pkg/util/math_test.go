package util

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp(1.5, -1, 1); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	if got := Clamp(-1.5, -1, 1); got != -1 {
		t.Fatalf("expected -1, got %v", got)
	}
	if got := Clamp(0.3, -1, 1); got != 0.3 {
		t.Fatalf("expected passthrough, got %v", got)
	}
}

func TestIsFinite(t *testing.T) {
	if IsFinite(math.NaN()) {
		t.Fatalf("NaN should not be finite")
	}
	if IsFinite(math.Inf(1)) {
		t.Fatalf("+Inf should not be finite")
	}
	if !IsFinite(42.0) {
		t.Fatalf("42 should be finite")
	}
}

func TestRounding(t *testing.T) {
	if got := Round1(12.345); got != 12.3 {
		t.Fatalf("Round1: got %v", got)
	}
	if got := Round2(12.345); got != 12.35 {
		t.Fatalf("Round2: got %v", got)
	}
	if got := Round3(12.3456); got != 12.346 {
		t.Fatalf("Round3: got %v", got)
	}
}
