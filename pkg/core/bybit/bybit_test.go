package bybit

import (
	"testing"
)

func TestFormatSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"BTCUSDT", "BTCUSDT"},
		{"btc/usdt", "BTCUSDT"},
		{"BTC-USDT", "BTCUSDT"},
		{"eth_usdt", "ETHUSDT"},
		{"  sol/usdt  ", "SOLUSDT"},
	}

	for _, tc := range tests {
		if got := FormatSymbol(tc.input); got != tc.expected {
			t.Errorf("Input %q: expected %q, got %q", tc.input, tc.expected, got)
		}
	}

	t.Log("✅ symbol normalization passed all cases")
}

func TestValidateCategory(t *testing.T) {
	for _, category := range ValidCategories {
		if err := ValidateCategory(category); err != nil {
			t.Errorf("category %q should be valid: %v", category, err)
		}
	}
	if err := ValidateCategory("margin"); err == nil {
		t.Error("expected an error for an unknown category")
	}
}

func TestValidateInterval(t *testing.T) {
	for _, interval := range ValidIntervals {
		if err := ValidateInterval(interval); err != nil {
			t.Errorf("interval %q should be valid: %v", interval, err)
		}
	}
	if err := ValidateInterval("2"); err == nil {
		t.Error("expected an error for an unknown interval")
	}
}

func TestCandlesNeeded(t *testing.T) {
	tests := []struct {
		days     int
		interval string
		expected int
	}{
		{1, "1", 1440},
		{1, "60", 24},
		{7, "240", 42},
		{30, "D", 30},
		{14, "W", 2},
		{90, "M", 3},
		{10, "unknown", 10},
	}

	for _, tc := range tests {
		if got := CandlesNeeded(tc.days, tc.interval); got != tc.expected {
			t.Errorf("CandlesNeeded(%d, %q): expected %d, got %d", tc.days, tc.interval, tc.expected, got)
		}
	}
}

func TestFormatKlines_SortAndParse(t *testing.T) {
	rows := [][]string{
		{"1700003600000", "2.0", "2.2", "1.9", "2.1", "500", "1050"},
		{"1700000000000", "1.0", "1.2", "0.9", "1.1", "1000", "1100"},
		{"bad-timestamp", "1", "1", "1", "1", "1", "1"},
		{"1700000000000", "too", "short"},
	}

	klines := FormatKlines(rows)

	if len(klines) != 2 {
		t.Fatalf("expected 2 valid klines, got %d", len(klines))
	}
	if klines[0].Timestamp != 1700000000000 || klines[1].Timestamp != 1700003600000 {
		t.Errorf("expected chronological order, got %d then %d", klines[0].Timestamp, klines[1].Timestamp)
	}
	if klines[0].ClosePrice != "1.1" {
		t.Errorf("expected close price 1.1, got %q", klines[0].ClosePrice)
	}
	if klines[0].Datetime == "" {
		t.Error("expected a rendered datetime")
	}
}

func TestDedupeKlines(t *testing.T) {
	rows := [][]string{
		{"100", "a"},
		{"200", "b"},
		{"100", "c"}, // duplicate timestamp, later row wins
	}

	deduped := DedupeKlines(rows)
	if len(deduped) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(deduped))
	}
	if deduped[0][1] != "c" {
		t.Errorf("expected the later duplicate to win, got %q", deduped[0][1])
	}
}
