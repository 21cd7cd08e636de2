package geom

import (
	"math"
	"testing"
)

func TestThicknessWidth(t *testing.T) {
	s := DefaultThicknessScale()

	tests := []struct {
		weight float64
		want   float64
	}{
		{-5, 1},
		{0, 1},
		{5, 3.5},
		{10, 6},
		{1000, 6},
	}
	for _, tc := range tests {
		if got := s.Width(tc.weight); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Width(%v) = %v, want %v", tc.weight, got, tc.want)
		}
	}
}

func TestThicknessMonotone(t *testing.T) {
	s := DefaultThicknessScale()
	prev := s.Width(-20)
	for w := -20.0; w <= 30; w += 0.25 {
		got := s.Width(w)
		if got < prev {
			t.Fatalf("Width decreased at weight %v: %v < %v", w, got, prev)
		}
		prev = got
	}
	if s.Width(-100) != s.MinWidth || s.Width(100) != s.MaxWidth {
		t.Error("Width should be pinned outside the weight range")
	}
}

func TestThicknessDegenerateRange(t *testing.T) {
	s := ThicknessScale{MinWeight: 5, MaxWeight: 5, MinWidth: 2, MaxWidth: 4}
	if s.Width(4) != 2 || s.Width(5) != 4 || s.Width(9) != 4 {
		t.Errorf("Step behaviour expected for empty weight range: %v %v %v", s.Width(4), s.Width(5), s.Width(9))
	}
}

func TestGaugeFraction(t *testing.T) {
	tests := []struct {
		name string
		g    Gauge
		want float64
	}{
		{"half", Gauge{Value: 50, Min: 0, Max: 100}, 0.5},
		{"below", Gauge{Value: -3, Min: 0, Max: 10}, 0},
		{"above", Gauge{Value: 13, Min: 0, Max: 10}, 1},
		{"offset range", Gauge{Value: 15, Min: 10, Max: 20}, 0.5},
		{"empty range", Gauge{Value: 5, Min: 5, Max: 5}, 0},
		{"inverted range", Gauge{Value: 5, Min: 10, Max: 0}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.g.Fraction(); math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("Fraction() = %v, want %v", got, tc.want)
			}
		})
	}

	if p := (Gauge{Value: 2, Min: 0, Max: 3}).Percent(); p != 67 {
		t.Errorf("Percent() = %d, want 67", p)
	}
}
