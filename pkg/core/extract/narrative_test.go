package extract

import (
	"strings"
	"testing"

	"investagent/pkg/models"
)

func fact(desc string, value float64, conf models.Confidence) models.NumericFact {
	return models.NumericFact{Description: desc, Value: value, RawValue: "", Confidence: conf}
}

func TestAnalyzeSectionContent_BalanceSheet(t *testing.T) {
	facts := []models.NumericFact{
		fact("Total assets", 10000, models.ConfidenceHigh),
		fact("Total liabilities", 6000, models.ConfidenceHigh),
		fact("Cash and cash equivalents", 1500, models.ConfidenceMedium),
	}

	narrative := AnalyzeSectionContent("balance_sheet", "", facts)

	if !strings.HasPrefix(narrative, "Анализ баланса компании:") {
		t.Errorf("expected balance-sheet heading, got %q", narrative)
	}
	if !strings.Contains(narrative, "Всего активов:") {
		t.Error("expected the total-assets category block")
	}
	if !strings.Contains(narrative, "Total assets: $10,000") {
		t.Errorf("expected formatted total assets line, got:\n%s", narrative)
	}
	// Balance sheets are classified with the asset rules, so liabilities land
	// in the other-important block via the "total" keyword.
	if !strings.Contains(narrative, "Другие важные показатели:") {
		t.Error("expected the other-important block")
	}
	if !strings.Contains(narrative, "Total liabilities: $6,000") {
		t.Errorf("expected liabilities surfaced as important, got:\n%s", narrative)
	}
	if !strings.Contains(narrative, "Всего найдено 3 числовых показателей в разделе.") {
		t.Error("expected trailing count line")
	}

	t.Log("✅ balance-sheet narrative mentions assets and liabilities")
}

func TestAnalyzeSectionContent_IncomeCategories(t *testing.T) {
	facts := []models.NumericFact{
		fact("Total revenues", 5000, models.ConfidenceHigh),
		fact("Net income", 800, models.ConfidenceHigh),
		fact("Diluted earnings per share", 2.15, models.ConfidenceMedium),
	}

	narrative := AnalyzeSectionContent("income_statement", "", facts)

	for _, category := range []string{"Выручка:", "Чистая прибыль:", "Прибыль на акцию:"} {
		if !strings.Contains(narrative, category) {
			t.Errorf("expected category %q in narrative:\n%s", category, narrative)
		}
	}
	if !strings.Contains(narrative, "Diluted earnings per share: $2.15") {
		t.Errorf("expected two-decimal formatting for sub-thousand values, got:\n%s", narrative)
	}
}

func TestAnalyzeSectionContent_CategoryPriorityOrder(t *testing.T) {
	// "Net sales" hits the revenue rule before the net-income rule can see it;
	// the rule order is part of the contract.
	narrative := AnalyzeSectionContent("income", "", []models.NumericFact{
		fact("Net sales", 4000, models.ConfidenceHigh),
	})

	if !strings.Contains(narrative, "Выручка:") {
		t.Errorf("expected Net sales classified as revenue, got:\n%s", narrative)
	}
	if strings.Contains(narrative, "Чистая прибыль:") {
		t.Errorf("Net sales must not reach the net-income rule, got:\n%s", narrative)
	}
}

func TestAnalyzeSectionContent_CategoryCap(t *testing.T) {
	var facts []models.NumericFact
	for _, desc := range []string{"Cash one", "Cash two", "Cash three", "Cash four", "Cash five"} {
		facts = append(facts, fact(desc, 100, models.ConfidenceMedium))
	}

	narrative := AnalyzeSectionContent("assets", "", facts)

	if strings.Contains(narrative, "Cash four") {
		t.Errorf("expected at most 3 facts per category, got:\n%s", narrative)
	}
	if !strings.Contains(narrative, "Всего найдено 5 числовых показателей в разделе.") {
		t.Error("count line must reflect all facts, not the displayed subset")
	}
}

func TestAnalyzeSectionContent_NoFacts(t *testing.T) {
	narrative := AnalyzeSectionContent("assets", "some content", nil)

	if !strings.Contains(narrative, "Не удалось извлечь структурированные числовые данные из этого раздела.") {
		t.Errorf("expected the no-data line, got %q", narrative)
	}
	if strings.Contains(narrative, "Всего найдено") {
		t.Error("no count line expected when no facts were found")
	}
}

func TestAnalyzeSectionContent_UnknownSectionHeading(t *testing.T) {
	narrative := AnalyzeSectionContent("segment data", "", nil)

	if !strings.HasPrefix(narrative, "Анализ раздела 'segment data':") {
		t.Errorf("expected generic heading, got %q", narrative)
	}
}
