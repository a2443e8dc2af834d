package extract

import (
	"reflect"
	"testing"

	"investagent/pkg/models"
)

func TestNumericFacts_CurrencyMarkedScaling(t *testing.T) {
	text := "Total revenue: $1,234.5 million"
	facts := NumericFacts(text)

	if len(facts) != 1 {
		t.Fatalf("expected 1 fact, got %d: %+v", len(facts), facts)
	}

	fact := facts[0]
	if fact.Description != "Total revenue" {
		t.Errorf("description: expected %q, got %q", "Total revenue", fact.Description)
	}
	if fact.Value != 1234500000.0 {
		t.Errorf("value: expected 1234500000, got %f", fact.Value)
	}
	if fact.RawValue != "1,234.5" {
		t.Errorf("raw_value: expected %q, got %q", "1,234.5", fact.RawValue)
	}
	if fact.Confidence != models.ConfidenceHigh {
		t.Errorf("confidence: expected high, got %s", fact.Confidence)
	}

	t.Log("✅ currency-marked scaling passed")
}

func TestNumericFacts_ScaleWords(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"Total revenue: $1,234.5 million", 1234500000},
		{"Total assets: $2.5 billion", 2500000000},
		{"Legal reserves: $750 thousand", 750000},
		{"Service fees total: 12K", 12000},
		{"Total revenue 1,234.50", 1234.5},
	}

	for _, tc := range tests {
		facts := NumericFacts(tc.input)
		if len(facts) == 0 {
			t.Errorf("Input %q: expected a fact, got none", tc.input)
			continue
		}
		if facts[0].Value != tc.expected {
			t.Errorf("Input %q: expected %f, got %f", tc.input, tc.expected, facts[0].Value)
		}
	}

	t.Log("✅ scale word resolution passed all cases")
}

func TestNumericFacts_PlainTabularConfidence(t *testing.T) {
	facts := NumericFacts("Total revenue 1,234.50")

	if len(facts) != 1 {
		t.Fatalf("expected 1 fact, got %d", len(facts))
	}
	if facts[0].Value != 1234.5 {
		t.Errorf("value: expected 1234.5, got %f", facts[0].Value)
	}
	if facts[0].Confidence != models.ConfidenceMedium {
		t.Errorf("confidence: expected medium, got %s", facts[0].Confidence)
	}
}

func TestNumericFacts_DedupePrefersCurrencyMarked(t *testing.T) {
	text := "Net income: $500 million USD earned. Net income 500"
	facts := NumericFacts(text)

	var matches []models.NumericFact
	for _, f := range facts {
		if f.Description == "Net income" {
			matches = append(matches, f)
		}
	}

	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 fact for Net income, got %d: %+v", len(matches), matches)
	}
	if matches[0].Confidence != models.ConfidenceHigh {
		t.Errorf("confidence: expected high, got %s", matches[0].Confidence)
	}
	if matches[0].Value != 500000000.0 {
		t.Errorf("value: expected 500000000, got %f", matches[0].Value)
	}

	t.Log("✅ dedupe kept the currency-marked fact")
}

func TestNumericFacts_SortOrder(t *testing.T) {
	// One high-confidence non-priority fact and one medium priority fact:
	// the confidence tier must dominate the keyword tier.
	text := "Deferred items: $50\nTotal assets 2,000"
	facts := NumericFacts(text)

	if len(facts) < 2 {
		t.Fatalf("expected at least 2 facts, got %d", len(facts))
	}
	if facts[0].Confidence != models.ConfidenceHigh {
		t.Errorf("first fact: expected high confidence, got %s (%q)", facts[0].Confidence, facts[0].Description)
	}

	// Within the same tier, priority keywords sort first.
	text = "Random figures 10\nTotal assets 2,000"
	facts = NumericFacts(text)
	if len(facts) < 2 {
		t.Fatalf("expected at least 2 facts, got %d", len(facts))
	}
	if facts[0].Description != "Total assets" {
		t.Errorf("first fact: expected Total assets, got %q", facts[0].Description)
	}
}

func TestNumericFacts_MalformedNumberDiscarded(t *testing.T) {
	facts := NumericFacts("Weird value: 1,2,3.4.5")
	for _, f := range facts {
		if f.Description == "Weird value" {
			t.Errorf("malformed candidate should be discarded, got %+v", f)
		}
	}
}

func TestNumericFacts_EmptyText(t *testing.T) {
	if facts := NumericFacts(""); len(facts) != 0 {
		t.Errorf("expected no facts for empty text, got %d", len(facts))
	}
}

func TestNumericFacts_Deterministic(t *testing.T) {
	text := "Total revenue: $1,234.5 million\nNet income 320\nOperating costs: 211.4\nCash and equivalents: $88 million"
	first := NumericFacts(text)
	second := NumericFacts(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
