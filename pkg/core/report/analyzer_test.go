package report

import (
	"errors"
	"strings"
	"testing"

	"investagent/pkg/models"
)

const sampleFiling = `Acme Corporation (the "Company") FORM 10-K
Annual report for the fiscal year ended December 31, 2024

Item 1A. Risk Factors
Competition is intense. Margins may fall. Supply chains are fragile.
Item 2. Properties

Item 7. Management's Discussion and Analysis of Financial Condition
The following discussion should be read together with our consolidated
financial statements and the related notes included elsewhere in this
report. It contains forward-looking statements that involve risks and
uncertainties, and actual results could differ materially from those
projected in any such statements for many reasons.
Revenue growth continued and margins improve as the business expanded with success.
Item 8. Financial Statements

CONSOLIDATED STATEMENTS OF OPERATIONS
Total revenue: $1,234.5 million
Net income: $200.0 million
Diluted earnings per share: $2.50
`

func textAnalyzer(text string) *Analyzer {
	return &Analyzer{ExtractText: func(string) (string, error) { return text, nil }}
}

func TestAnalyzeReport_Fields(t *testing.T) {
	analysis, err := textAnalyzer(sampleFiling).AnalyzeReport("sample.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.ReportType != "10-K" {
		t.Errorf("report_type: expected 10-K, got %q", analysis.ReportType)
	}
	if analysis.Period != "December 31, 2024" {
		t.Errorf("period: expected %q, got %q", "December 31, 2024", analysis.Period)
	}
	if !strings.Contains(analysis.CompanyName, "Acme Corporation") {
		t.Errorf("company_name: expected Acme Corporation, got %q", analysis.CompanyName)
	}
	if analysis.Metrics["revenue"] != 1234.5 {
		t.Errorf("revenue: expected 1234.5, got %f", analysis.Metrics["revenue"])
	}
	if analysis.Metrics["net_income"] != 200.0 {
		t.Errorf("net_income: expected 200, got %f", analysis.Metrics["net_income"])
	}
	if analysis.Metrics["eps"] != 2.50 {
		t.Errorf("eps: expected 2.5, got %f", analysis.Metrics["eps"])
	}
	if len(analysis.SectionsFound) == 0 || analysis.SectionsFound[0] != "income_statement" {
		t.Errorf("sections_found: expected income_statement first, got %v", analysis.SectionsFound)
	}
	if analysis.AnalysisTimestamp == "" {
		t.Error("expected an analysis timestamp")
	}
	if len(analysis.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}

	t.Log("✅ full-document analysis passed")
}

func TestAnalyzeReport_SentimentRecommendation(t *testing.T) {
	analysis, err := textAnalyzer(sampleFiling).AnalyzeReport("sample.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found bool
	for _, rec := range analysis.Recommendations {
		if strings.Contains(rec.Recommendation, "Тон руководства") {
			found = true
			if !strings.Contains(rec.Recommendation, string(models.SentimentVeryPositive)) {
				t.Errorf("expected very positive tone, got %q", rec.Recommendation)
			}
		}
	}
	if !found {
		t.Error("expected a management-tone recommendation")
	}
}

func TestAnalyzeReport_NoMetrics(t *testing.T) {
	analysis, err := textAnalyzer("FORM 8-K\nNothing numeric here.").AnalyzeReport("x.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.ReportType != "8-K" {
		t.Errorf("report_type: expected 8-K, got %q", analysis.ReportType)
	}
	if len(analysis.Recommendations) != 1 {
		t.Fatalf("expected the single insufficient-data recommendation, got %d", len(analysis.Recommendations))
	}
	if analysis.Recommendations[0].Confidence != models.ConfidenceLow {
		t.Errorf("expected low confidence, got %s", analysis.Recommendations[0].Confidence)
	}
}

func TestAnalyzeReport_ExtractionFailure(t *testing.T) {
	a := &Analyzer{ExtractText: func(string) (string, error) { return "", errors.New("file not found") }}
	if _, err := a.AnalyzeReport("missing.pdf"); err == nil {
		t.Error("expected extraction error to propagate")
	}
}

func TestManagementSentiment(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.Sentiment
	}{
		{"very positive", "growth and increase and higher margins", models.SentimentVeryPositive},
		{"positive", "growth and increase against one decline", models.SentimentPositive},
		{"neutral", "growth offset by decline", models.SentimentNeutral},
		{"negative", "decline and decrease with some growth", models.SentimentNegative},
		{"very negative", "decline, decrease and loss everywhere", models.SentimentVeryNegative},
		{"empty", "", models.SentimentNeutral},
	}

	for _, tc := range tests {
		sentiment, _, _ := ManagementSentiment(tc.text)
		if sentiment != tc.expected {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.expected, sentiment)
		}
	}

	t.Log("✅ sentiment thresholds passed all cases")
}

func TestSummarize(t *testing.T) {
	analysis := models.ReportAnalysis{
		CompanyName: "Acme Corporation",
		ReportType:  "10-K",
		Period:      "December 31, 2024",
		Metrics:     map[string]float64{"revenue": 1234.5, "eps": 2.5},
		Recommendations: []models.Recommendation{
			{Recommendation: "Обнаружены данные о выручке", Confidence: models.ConfidenceMedium, Reasoning: "Выручка составляет 1234.5."},
		},
	}

	digest := Summarize(analysis)

	if !strings.Contains(digest, "# Анализ финансового отчета Acme Corporation") {
		t.Error("expected the company header")
	}
	if !strings.Contains(digest, "- Revenue: 1234.5") {
		t.Errorf("expected a revenue bullet, got:\n%s", digest)
	}
	if !strings.Contains(digest, "Обоснование: Выручка составляет 1234.5.") {
		t.Error("expected the reasoning line")
	}
	if !strings.Contains(digest, digestDisclaimer) {
		t.Error("expected the fixed disclaimer")
	}
}

func TestSummarize_EmptyAnalysis(t *testing.T) {
	digest := Summarize(models.ReportAnalysis{})

	if !strings.Contains(digest, "Не удалось извлечь ключевые метрики") {
		t.Error("expected the no-metrics bullet")
	}
	if !strings.Contains(digest, "Не удалось сформировать рекомендации") {
		t.Error("expected the no-recommendations bullet")
	}
}
