package channel

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateEmpty(t *testing.T) {
	_, err := Calculate(nil, 0.8)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestCalculateSingleValue(t *testing.T) {
	ch, err := Calculate([]float64{42.5}, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(ch.Lower, 42.5) || !almostEqual(ch.Upper, 42.5) {
		t.Errorf("single-value sample should collapse both bounds to 42.5, got [%v, %v]", ch.Lower, ch.Upper)
	}
}

func TestCalculateUniformSample(t *testing.T) {
	// 0..100 inclusive: the 10th/90th percentiles land exactly on 10 and 90.
	closes := make([]float64, 101)
	for i := range closes {
		closes[i] = float64(i)
	}
	ch, err := Calculate(closes, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(ch.Lower, 10) {
		t.Errorf("lower = %v, want 10", ch.Lower)
	}
	if !almostEqual(ch.Upper, 90) {
		t.Errorf("upper = %v, want 90", ch.Upper)
	}
}

func TestCalculateInterpolation(t *testing.T) {
	// Four points, s=0.5 => 25th/75th percentiles at rank 0.75 and 2.25.
	ch, err := Calculate([]float64{4, 1, 3, 2}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(ch.Lower, 1.75) {
		t.Errorf("lower = %v, want 1.75", ch.Lower)
	}
	if !almostEqual(ch.Upper, 3.25) {
		t.Errorf("upper = %v, want 3.25", ch.Upper)
	}
}

func TestCalculateBoundsOrdered(t *testing.T) {
	samples := [][]float64{
		{1},
		{5, 5, 5},
		{1, 2, 3, 4, 5, 6, 7, 8, 9},
		{100, 80, 120, 95, 101.5},
	}
	for _, s := range samples {
		ch, err := Calculate(s, 0.8)
		if err != nil {
			t.Fatal(err)
		}
		if ch.Lower > ch.Upper {
			t.Errorf("lower %v > upper %v for sample %v", ch.Lower, ch.Upper, s)
		}
	}
}

func TestCalculateInvalidIntervalSize(t *testing.T) {
	for _, s := range []float64{0, 1, -0.5, 1.5} {
		if _, err := Calculate([]float64{1, 2, 3}, s); err == nil {
			t.Errorf("interval size %v should be rejected", s)
		}
	}
}

func TestCalculateDoesNotMutateInput(t *testing.T) {
	closes := []float64{3, 1, 2}
	if _, err := Calculate(closes, 0.8); err != nil {
		t.Fatal(err)
	}
	if closes[0] != 3 || closes[1] != 1 || closes[2] != 2 {
		t.Errorf("input slice was reordered: %v", closes)
	}
}
