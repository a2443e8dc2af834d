package secapi

import (
	"strings"
	"testing"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		ticker    string
		formType  string
		startDate string
		endDate   string
		expected  string
	}{
		{"AAPL", "", "", "", "ticker:AAPL"},
		{"AAPL", "10-K", "", "", `ticker:AAPL AND formType:"10-K"`},
		{"TSLA", "10-Q", "2024-01-01", "2024-03-31", `ticker:TSLA AND formType:"10-Q" AND filedAt:[2024-01-01 TO 2024-03-31]`},
		{"MSFT", "", "2023-01-01", "", "ticker:MSFT"}, // half-open ranges are ignored
	}

	for _, tc := range tests {
		if got := BuildQuery(tc.ticker, tc.formType, tc.startDate, tc.endDate); got != tc.expected {
			t.Errorf("BuildQuery(%q, %q, %q, %q):\nexpected %q\ngot      %q",
				tc.ticker, tc.formType, tc.startDate, tc.endDate, tc.expected, got)
		}
	}

	t.Log("✅ query building passed all cases")
}

func TestQuarterDateRange(t *testing.T) {
	tests := []struct {
		year    int
		quarter int
		start   string
		end     string
	}{
		{2024, 1, "2024-01-01", "2024-03-31"},
		{2024, 2, "2024-04-01", "2024-06-30"},
		{2024, 3, "2024-07-01", "2024-09-30"},
		{2024, 4, "2024-10-01", "2024-12-31"},
		{2023, 0, "2023-01-01", "2023-12-31"},
		{0, 2, "", ""},
	}

	for _, tc := range tests {
		start, end := QuarterDateRange(tc.year, tc.quarter)
		if start != tc.start || end != tc.end {
			t.Errorf("QuarterDateRange(%d, %d): expected (%q, %q), got (%q, %q)",
				tc.year, tc.quarter, tc.start, tc.end, start, end)
		}
	}
}

func TestFormatFilingSummary(t *testing.T) {
	filing := Filing{
		FormType:       "10-K",
		FiledAt:        "2024-02-02T16:30:00-05:00",
		PeriodOfReport: "2023-12-30",
		Description:    "Annual report",
	}

	line := FormatFilingSummary(filing)
	if !strings.Contains(line, "10-K от 2024-02-02") {
		t.Errorf("expected form and date, got %q", line)
	}
	if !strings.Contains(line, "за период до 2023-12-30") {
		t.Errorf("expected report period, got %q", line)
	}

	empty := FormatFilingSummary(Filing{})
	if !strings.Contains(empty, "Неизвестный тип") || !strings.Contains(empty, "Нет описания") {
		t.Errorf("expected placeholder strings, got %q", empty)
	}
}

func TestFormatFilingList(t *testing.T) {
	result := &SearchResult{
		Ticker: "AAPL",
		Count:  2,
		Filings: []Filing{
			{FormType: "10-K", FiledAt: "2024-02-02T00:00:00Z", Description: "Annual"},
			{FormType: "10-Q", FiledAt: "2024-05-03T00:00:00Z", Description: "Quarterly"},
		},
	}

	list := FormatFilingList(result)
	if !strings.Contains(list, "Найдено 2 отчетов для AAPL") {
		t.Errorf("expected header, got %q", list)
	}
	if !strings.Contains(list, "1. 10-K") || !strings.Contains(list, "2. 10-Q") {
		t.Errorf("expected numbered entries, got %q", list)
	}

	emptyList := FormatFilingList(&SearchResult{Ticker: "ZZZZ"})
	if !strings.Contains(emptyList, "не найдено отчетов") {
		t.Errorf("expected empty message, got %q", emptyList)
	}
}

func TestSearchFilings_NoKey(t *testing.T) {
	c := NewClient("")
	if _, err := c.SearchFilings(t.Context(), "AAPL", "10-K", "", "", 1); err == nil {
		t.Error("expected an error without an API key")
	}
}
