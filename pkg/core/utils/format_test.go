package utils

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value    float64
		currency string
		expected string
	}{
		{1234567.891, "USD", "$1,234,567.89"},
		{1000, "USD", "$1,000.00"},
		{999.5, "", "$999.50"},
		{1234.5, "EUR", "1,234.50 EUR"},
		{-2500, "USD", "$-2,500.00"},
		{0, "USD", "$0.00"},
	}

	for _, tc := range tests {
		if got := FormatCurrency(tc.value, tc.currency); got != tc.expected {
			t.Errorf("FormatCurrency(%v, %q): expected %q, got %q", tc.value, tc.currency, tc.expected, got)
		}
	}

	t.Log("✅ currency formatting passed all cases")
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{2500000, "$2,500,000"},
		{1000, "$1,000"},
		{999.99, "$999.99"},
		{12.5, "$12.50"},
		{0.75, "$0.75"},
	}

	for _, tc := range tests {
		if got := FormatAmount(tc.value); got != tc.expected {
			t.Errorf("FormatAmount(%v): expected %q, got %q", tc.value, tc.expected, got)
		}
	}
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		current  float64
		previous float64
		expected float64
	}{
		{110, 100, 10},
		{90, 100, -10},
		{100, 100, 0},
		{50, -100, 150}, // negative base uses its magnitude
	}

	for _, tc := range tests {
		got := GrowthRate(tc.current, tc.previous)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("GrowthRate(%v, %v): expected %v, got %v", tc.current, tc.previous, tc.expected, got)
		}
	}
}

func TestGrowthRate_ZeroBase(t *testing.T) {
	if got := GrowthRate(100, 0); !math.IsInf(got, 1) {
		t.Errorf("expected +Inf for growth from zero, got %v", got)
	}
	if got := GrowthRate(-100, 0); !math.IsInf(got, -1) {
		t.Errorf("expected -Inf for decline from zero, got %v", got)
	}
	if got := GrowthRate(0, 0); got != 0 {
		t.Errorf("expected 0 for zero over zero, got %v", got)
	}
}
