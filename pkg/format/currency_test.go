package format

import "testing"

func TestAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Zero", 0, "0.00"},
		{"Small", 12.5, "12.50"},
		{"Thousands", 1234.567, "1,234.57"},
		{"Millions", 1234567.891, "1,234,567.89"},
		{"Negative", -46000, "-46,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Amount(tt.input); got != tt.expected {
				t.Errorf("Amount(%v) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCurrency(t *testing.T) {
	if got := Currency(91800); got != "$91,800.00" {
		t.Errorf("Currency(91800) = %q", got)
	}
	if got := Currency(-1234.5); got != "-$1,234.50" {
		t.Errorf("Currency(-1234.5) = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.125); got != "12.5%" {
		t.Errorf("Percent(0.125) = %q", got)
	}
	if got := Percent(1); got != "100.0%" {
		t.Errorf("Percent(1) = %q", got)
	}
}
