package repository

import "testing"

func TestIsValidWindow(t *testing.T) {
	for _, d := range []int{7, 30, 90} {
		if !IsValidWindow(d) {
			t.Fatalf("%d should be valid", d)
		}
	}
	for _, d := range []int{0, 6, 91, -5} {
		if IsValidWindow(d) {
			t.Fatalf("%d should be invalid", d)
		}
	}
}

func TestNormalizeWindow(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, DefaultWindowDays},
		{-10, DefaultWindowDays},
		{3, MinWindowDays},
		{7, 7},
		{30, 30},
		{90, 90},
		{365, MaxWindowDays},
	}
	for _, tc := range cases {
		if got := NormalizeWindow(tc.in); got != tc.want {
			t.Fatalf("NormalizeWindow(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
