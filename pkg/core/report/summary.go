package report

import (
	"fmt"
	"strings"

	"investagent/pkg/models"
)

// =============================================================================
// DIGEST
// =============================================================================

const digestDisclaimer = "Данный анализ основан на автоматическом извлечении данных из отчета и является предварительным. Для принятия инвестиционных решений рекомендуется провести более глубокий анализ и проконсультироваться с финансовым консультантом."

// metricDigestOrder keeps digest bullets stable across runs; map iteration
// order must not leak into displayed output.
var metricDigestOrder = []string{"revenue", "net_income", "eps"}

// Summarize renders a ReportAnalysis as a markdown digest: header lines,
// metric bullets, recommendations with reasoning, and a fixed disclaimer.
func Summarize(analysis models.ReportAnalysis) string {
	var lines []string

	company := analysis.CompanyName
	if company == "" {
		company = "Компании"
	}
	reportType := analysis.ReportType
	if reportType == "" {
		reportType = "Неизвестный"
	}
	period := analysis.Period
	if period == "" {
		period = "Неизвестный"
	}

	lines = append(lines,
		fmt.Sprintf("# Анализ финансового отчета %s", company),
		fmt.Sprintf("## Тип отчета: %s", reportType),
		fmt.Sprintf("## Период: %s", period),
		"",
		"## Ключевые метрики:",
	)

	if len(analysis.Metrics) > 0 {
		for _, name := range metricDigestOrder {
			if value, ok := analysis.Metrics[name]; ok {
				lines = append(lines, fmt.Sprintf("- %s: %s", capitalize(name), formatMetric(value)))
			}
		}
	} else {
		lines = append(lines, "- Не удалось извлечь ключевые метрики")
	}
	lines = append(lines, "")

	lines = append(lines, "## Рекомендации и выводы:")
	if len(analysis.Recommendations) > 0 {
		for _, rec := range analysis.Recommendations {
			lines = append(lines, fmt.Sprintf("- %s", rec.Recommendation))
			if rec.Reasoning != "" {
				lines = append(lines, fmt.Sprintf("  Обоснование: %s", rec.Reasoning))
			}
			lines = append(lines, "")
		}
	} else {
		lines = append(lines, "- Не удалось сформировать рекомендации")
	}

	lines = append(lines, "## Примечание:", digestDisclaimer)

	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
