package edgar

import (
	"strings"
	"testing"
)

func TestPadCIK(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"320193", "0000320193"},
		{"0000320193", "0000320193"},
		{"37996", "0000037996"},
		{"1318605", "0001318605"},
	}

	for _, tc := range tests {
		if got := PadCIK(tc.input); got != tc.expected {
			t.Errorf("Input %q: expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func sampleInfo() *CompanyInfo {
	info := &CompanyInfo{CIK: "320193", Name: "Apple Inc."}
	info.Filings.Recent = RecentFilings{
		AccessionNumber: []string{"0000320193-24-000012", "0000320193-24-000008", "0000320193-23-000106"},
		FilingDate:      []string{"2024-05-03", "2024-02-02", "2023-11-03"},
		ReportDate:      []string{"2024-03-30", "2023-12-30", "2023-09-30"},
		Form:            []string{"10-Q", "10-Q", "10-K"},
		PrimaryDocument: []string{"aapl-q2.htm", "aapl-q1.htm", "aapl-10k.htm"},
		Size:            []int{100, 200, 300},
	}
	return info
}

func TestFilings_FormFilterAndLimit(t *testing.T) {
	filings := Filings(sampleInfo(), []string{"10-K"}, 0)
	if len(filings) != 1 {
		t.Fatalf("expected 1 10-K, got %d", len(filings))
	}
	if filings[0].AccessionNumber != "0000320193-23-000106" {
		t.Errorf("unexpected accession number %q", filings[0].AccessionNumber)
	}

	filings = Filings(sampleInfo(), nil, 2)
	if len(filings) != 2 {
		t.Errorf("expected limit of 2, got %d", len(filings))
	}
}

func TestFilings_URLConstruction(t *testing.T) {
	filings := Filings(sampleInfo(), []string{"10-K"}, 1)
	if len(filings) != 1 {
		t.Fatal("expected one filing")
	}

	url := filings[0].URL
	if !strings.Contains(url, "/320193/") {
		t.Errorf("URL should contain the CIK, got %q", url)
	}
	if strings.Contains(url, "0000320193-23-000106") {
		t.Errorf("accession number must be dash-stripped in the URL, got %q", url)
	}
	if !strings.HasSuffix(url, "/aapl-10k.htm") {
		t.Errorf("URL should end with the primary document, got %q", url)
	}
}

func conceptFixture() *ConceptData {
	return &ConceptData{
		Tag: "Revenues",
		Units: map[string][]FactValue{
			"USD": {
				{End: "2022-12-31", Val: 80000, Form: "10-K"},
				{End: "2024-12-31", Val: 96000, Form: "10-K", Filed: "2025-02-01"},
				{End: "2023-12-31", Val: 90000, Form: "10-K"},
			},
		},
	}
}

func TestLatestFactValue(t *testing.T) {
	latest, ok := LatestFactValue(conceptFixture())
	if !ok {
		t.Fatal("expected a latest value")
	}
	if latest.Value != 96000 {
		t.Errorf("expected the 2024 value, got %f", latest.Value)
	}
	if latest.EndDate != "2024-12-31" {
		t.Errorf("expected end date 2024-12-31, got %q", latest.EndDate)
	}
	if latest.Unit != "USD" {
		t.Errorf("expected unit USD, got %q", latest.Unit)
	}
}

func TestLatestFactValue_Empty(t *testing.T) {
	if _, ok := LatestFactValue(nil); ok {
		t.Error("expected no value for nil data")
	}
	if _, ok := LatestFactValue(&ConceptData{}); ok {
		t.Error("expected no value for empty units")
	}
}

func TestSummarizeConcept(t *testing.T) {
	summary := SummarizeConcept(conceptFixture(), 2)

	points, ok := summary["USD"]
	if !ok {
		t.Fatal("expected USD series")
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(points))
	}
	// Chronological order: oldest of the selected periods first.
	if points[0].EndDate != "2023-12-31" || points[1].EndDate != "2024-12-31" {
		t.Errorf("expected chronological order, got %v", points)
	}
}
