package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Inside range", 0.25, 0.25},
		{"Below range", -0.5, 0},
		{"Above range", 1.5, 1},
		{"NaN", math.NaN(), 0},
		{"Positive infinity", math.Inf(1), 1},
		{"Negative infinity", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.input, 0, 1); got != tt.expected {
				t.Errorf("Clamp(%v, 0, 1) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{"Empty", nil, 0},
		{"Single", []float64{7}, 7},
		{"Odd count unsorted", []float64{3, 1, 2}, 2},
		{"Even count averages middles", []float64{4, 1, 3, 2}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.input); got != tt.expected {
				t.Errorf("Median(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	input := []float64{3, 1, 2}
	_ = Median(input)
	if input[0] != 3 || input[1] != 1 || input[2] != 2 {
		t.Errorf("Median modified its input: %v", input)
	}
}

func TestMinMax(t *testing.T) {
	lo, hi, ok := MinMax([]float64{5, -2, 9, 0})
	if !ok || lo != -2 || hi != 9 {
		t.Errorf("MinMax() = (%v, %v, %v), expected (-2, 9, true)", lo, hi, ok)
	}

	if _, _, ok := MinMax(nil); ok {
		t.Errorf("MinMax(nil) expected ok = false")
	}
}

func TestMeanAndSum(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	if got := Sum(values); got != 10 {
		t.Errorf("Sum() = %v, expected 10", got)
	}
	if got := Mean(values); got != 2.5 {
		t.Errorf("Mean() = %v, expected 2.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, expected 0", got)
	}
}

func TestShareOf(t *testing.T) {
	if got := ShareOf(25, 100); got != 0.25 {
		t.Errorf("ShareOf(25, 100) = %v, expected 0.25", got)
	}
	if got := ShareOf(0, 0); got != 0 {
		t.Errorf("ShareOf(0, 0) = %v, expected 0", got)
	}
	if got := ShareOf(1, 0); math.IsInf(got, 0) || got <= 0 {
		t.Errorf("ShareOf(1, 0) = %v, expected large finite value", got)
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(1.0, 1.0000001, 1e-6) {
		t.Errorf("expected values within tolerance")
	}
	if WithinTolerance(1.0, 1.1, 1e-6) {
		t.Errorf("expected values outside tolerance")
	}
}

func TestPercentToFraction(t *testing.T) {
	if got := PercentToFraction(20); got != 0.2 {
		t.Errorf("PercentToFraction(20) = %v, expected 0.2", got)
	}
}
