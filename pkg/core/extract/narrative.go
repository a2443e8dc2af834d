package extract

import (
	"fmt"
	"strings"

	"investagent/pkg/core/utils"
	"investagent/pkg/models"
)

// =============================================================================
// SECTION CONTENT ANALYZER
// =============================================================================

// sectionHeadings maps canonical section names to the narrative heading line.
var sectionHeadings = map[string]string{
	"assets":           "Анализ активов компании:",
	"liabilities":      "Анализ обязательств компании:",
	"equity":           "Анализ собственного капитала компании:",
	"revenue":          "Анализ выручки компании:",
	"income":           "Анализ прибыли компании:",
	"cash_flow":        "Анализ денежных потоков компании:",
	"balance_sheet":    "Анализ баланса компании:",
	"income_statement": "Анализ отчета о прибылях и убытках:",
}

const otherCategory = "Другое"

// categoryRule assigns a category label when Match returns true for a
// lower-cased fact description.
type categoryRule struct {
	Category string
	Match    func(desc string) bool
}

func containsAny(desc string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(desc, s) {
			return true
		}
	}
	return false
}

// Rule order encodes priority: the first matching rule wins, so "total
// assets" is classified before the bare "cash" test can see it. The order is
// part of the observable output and must not be "improved".
var assetRules = []categoryRule{
	{"Всего активов", func(d string) bool { return strings.Contains(d, "total assets") }},
	{"Текущие активы", func(d string) bool { return strings.Contains(d, "current assets") }},
	{"Денежные средства", func(d string) bool { return containsAny(d, "cash", "equivalent") }},
	{"Дебиторская задолженность", func(d string) bool { return strings.Contains(d, "receivable") }},
	{"Запасы", func(d string) bool { return strings.Contains(d, "inventory") }},
	{"Основные средства", func(d string) bool { return containsAny(d, "property", "equipment", "ppe") }},
	{"Нематериальные активы", func(d string) bool { return containsAny(d, "goodwill", "intangible") }},
}

var liabilityRules = []categoryRule{
	{"Всего обязательств", func(d string) bool { return strings.Contains(d, "total liabilities") }},
	{"Текущие обязательства", func(d string) bool { return strings.Contains(d, "current liabilities") }},
	{"Долгосрочные обязательства", func(d string) bool { return containsAny(d, "long-term", "longterm") }},
	{"Долг", func(d string) bool { return containsAny(d, "debt", "borrowing", "loan") }},
	{"Кредиторская задолженность", func(d string) bool { return strings.Contains(d, "payable") }},
}

var incomeRules = []categoryRule{
	{"Выручка", func(d string) bool { return containsAny(d, "revenue", "sales") }},
	{"Валовая прибыль", func(d string) bool {
		return strings.Contains(d, "gross") && containsAny(d, "profit", "margin")
	}},
	{"Операционная прибыль", func(d string) bool {
		return strings.Contains(d, "operating") && containsAny(d, "income", "profit")
	}},
	{"Чистая прибыль", func(d string) bool {
		return strings.Contains(d, "net") && containsAny(d, "income", "profit", "earnings")
	}},
	{"Прибыль на акцию", func(d string) bool { return containsAny(d, "eps", "earnings per share") }},
}

var cashFlowRules = []categoryRule{
	{"Операционный денежный поток", func(d string) bool { return strings.Contains(d, "operating") }},
	{"Инвестиционный денежный поток", func(d string) bool { return strings.Contains(d, "investing") }},
	{"Финансовый денежный поток", func(d string) bool { return strings.Contains(d, "financing") }},
	{"Свободный денежный поток", func(d string) bool { return strings.Contains(d, "free cash flow") }},
	{"Денежные средства и эквиваленты", func(d string) bool { return strings.Contains(d, "cash and cash equivalent") }},
}

// rulesFor picks the category rule set for a section. A balance sheet is
// classified with the asset rules; income with the income-statement rules.
// Sections without a rule set put everything in the "other" bucket.
func rulesFor(sectionName string) []categoryRule {
	switch strings.ToLower(sectionName) {
	case "assets", "balance_sheet":
		return assetRules
	case "liabilities":
		return liabilityRules
	case "income", "income_statement":
		return incomeRules
	case "cash_flow":
		return cashFlowRules
	default:
		return nil
	}
}

// importantKeywords lift an otherwise-uncategorized fact into the "other
// important indicators" block.
var importantKeywords = []string{"total", "net", "ebitda", "margin", "ratio"}

// AnalyzeSectionContent builds a multi-line narrative for a located section:
// a heading, per-category blocks of up to 3 formatted facts, up to 5 "other
// important" facts, and a trailing count line. Facts are grouped by the
// section's rule set in first-appearance order.
func AnalyzeSectionContent(sectionName, content string, facts []models.NumericFact) string {
	var lines []string

	heading, ok := sectionHeadings[strings.ToLower(sectionName)]
	if !ok {
		heading = fmt.Sprintf("Анализ раздела '%s':", sectionName)
	}
	lines = append(lines, heading)

	if len(facts) == 0 {
		lines = append(lines, "Не удалось извлечь структурированные числовые данные из этого раздела.")
		return strings.Join(lines, "\n")
	}

	rules := rulesFor(sectionName)
	categorized := make(map[string][]models.NumericFact)
	var order []string

	for _, fact := range facts {
		desc := strings.ToLower(fact.Description)
		category := otherCategory
		for _, rule := range rules {
			if rule.Match(desc) {
				category = rule.Category
				break
			}
		}
		if _, seen := categorized[category]; !seen {
			order = append(order, category)
		}
		categorized[category] = append(categorized[category], fact)
	}

	for _, category := range order {
		if category == otherCategory {
			continue
		}
		lines = append(lines, "\n"+category+":")
		items := categorized[category]
		if len(items) > 3 {
			items = items[:3]
		}
		for _, item := range items {
			lines = append(lines, fmt.Sprintf("- %s: %s", item.Description, utils.FormatAmount(item.Value)))
		}
	}

	var important []models.NumericFact
	for _, item := range categorized[otherCategory] {
		if containsAny(strings.ToLower(item.Description), importantKeywords...) {
			important = append(important, item)
		}
	}
	if len(important) > 0 {
		lines = append(lines, "\nДругие важные показатели:")
		if len(important) > 5 {
			important = important[:5]
		}
		for _, item := range important {
			lines = append(lines, fmt.Sprintf("- %s: %s", item.Description, utils.FormatAmount(item.Value)))
		}
	}

	lines = append(lines, fmt.Sprintf("\nВсего найдено %d числовых показателей в разделе.", len(facts)))
	return strings.Join(lines, "\n")
}
