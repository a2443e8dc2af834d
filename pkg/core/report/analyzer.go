package report

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"investagent/pkg/core/textdoc"
	"investagent/pkg/models"
)

// =============================================================================
// REPORT ANALYZER (orchestrator)
// =============================================================================

// Analyzer runs the whole-document pipeline over a downloaded report file.
// The text extractor is injectable so tests can feed raw text.
type Analyzer struct {
	ExtractText func(path string) (string, error)
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{ExtractText: textdoc.Extract}
}

var reportTypeProbes = []struct {
	Type    string
	Pattern *regexp.Regexp
}{
	{"10-K", regexp.MustCompile(`(?i)form\s+10-k`)},
	{"10-Q", regexp.MustCompile(`(?i)form\s+10-q`)},
	{"8-K", regexp.MustCompile(`(?i)form\s+8-k`)},
}

var (
	periodPattern  = regexp.MustCompile(`(?i)(?:quarter|period|year)[\s\w]+end(?:ed|ing)\s+(\w+\s+\d{1,2},?\s+\d{4})`)
	companyPattern = regexp.MustCompile(`(?i)([\w\s,.]+)(?:\(|is\s+a)`)

	mdaPattern  = regexp.MustCompile(`(?is)(?:item\s+[27][.):]|management's\s+discussion\s+and\s+analysis).{0,200}(.*?)(?:item\s+[38][.)]|subsequent\s+events)`)
	riskPattern = regexp.MustCompile(`(?is)(?:item\s+1a[.):]|risk\s+factors).{0,200}(.*?)(?:item\s+[12][.)]|unresolved\s+staff\s+comments)`)

	sentenceEnd = regexp.MustCompile(`\.\s+`)
)

// companyNameWindow bounds the company-name search to the document head,
// where the cover page lives. The period probe runs over the whole text.
const companyNameWindow = 1000

var positiveIndicators = []string{"growth", "increase", "higher", "improve", "expanded", "success"}
var negativeIndicators = []string{"decline", "decrease", "lower", "challenges", "difficult", "loss"}

// ManagementSentiment classifies the tone of an MD&A block by how many words
// of the positive and negative indicator lists occur in it (whole-word,
// case-insensitive; each list word counts once). Returns the classification
// and both counts.
func ManagementSentiment(discussion string) (models.Sentiment, int, int) {
	count := func(words []string) int {
		n := 0
		for _, word := range words {
			if regexp.MustCompile(`(?i)\b` + word + `\b`).MatchString(discussion) {
				n++
			}
		}
		return n
	}

	positive := count(positiveIndicators)
	negative := count(negativeIndicators)

	sentiment := models.SentimentNeutral
	switch {
	case positive > negative*2:
		sentiment = models.SentimentVeryPositive
	case positive > negative:
		sentiment = models.SentimentPositive
	case negative > positive*2:
		sentiment = models.SentimentVeryNegative
	case negative > positive:
		sentiment = models.SentimentNegative
	}
	return sentiment, positive, negative
}

// AnalyzeReport extracts text from a report file and assembles the full
// analysis: report type, period, company, statement sections, key metrics,
// MD&A sentiment and recommendations. Extraction failure propagates as an
// error.
func (a *Analyzer) AnalyzeReport(path string) (models.ReportAnalysis, error) {
	text, err := a.ExtractText(path)
	if err != nil {
		return models.ReportAnalysis{}, err
	}
	if text == "" {
		return models.ReportAnalysis{}, fmt.Errorf("no text extracted from %s", path)
	}

	return a.AnalyzeText(text)
}

// AnalyzeText runs the full analysis over already-extracted report text. Any
// panic inside the assembly is converted to an error at this boundary so
// callers never see a partial result presented as complete.
func (a *Analyzer) AnalyzeText(text string) (result models.ReportAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ReportAnalyzer] panic during analysis: %v", r)
			err = fmt.Errorf("error analyzing report: %v", r)
			result = models.ReportAnalysis{}
		}
	}()

	if text == "" {
		return models.ReportAnalysis{}, fmt.Errorf("empty report text")
	}
	return a.analyzeText(text), nil
}

// analyzeText runs the assembly steps over already-extracted text.
func (a *Analyzer) analyzeText(text string) models.ReportAnalysis {
	reportType := "unknown"
	for _, probe := range reportTypeProbes {
		if probe.Pattern.MatchString(text) {
			reportType = probe.Type
			break
		}
	}

	period := "unknown"
	if m := periodPattern.FindStringSubmatch(text); m != nil {
		period = m[1]
	}

	companyName := "unknown"
	head := text
	if len(head) > companyNameWindow {
		head = head[:companyNameWindow]
	}
	if m := companyPattern.FindStringSubmatch(head); m != nil {
		companyName = strings.TrimSpace(m[1])
	}

	sections := FindFinancialTables(text)
	metrics := ExtractKeyMetrics(text)

	discussion := ""
	if m := mdaPattern.FindStringSubmatch(text); m != nil {
		discussion = m[1]
	}
	riskFactors := ""
	if m := riskPattern.FindStringSubmatch(text); m != nil {
		riskFactors = m[1]
	}

	return models.ReportAnalysis{
		CompanyName:       companyName,
		ReportType:        reportType,
		Period:            period,
		Metrics:           metrics,
		SectionsFound:     StatementNames(sections),
		Recommendations:   buildRecommendations(metrics, discussion, riskFactors),
		AnalysisTimestamp: time.Now().Format(time.RFC3339),
	}
}

// buildRecommendations assembles the qualitative conclusions: data-presence
// notes for revenue and EPS, the MD&A tone classification, and a risk-volume
// note when the Risk Factors block is unusually long.
func buildRecommendations(metrics map[string]float64, discussion, riskFactors string) []models.Recommendation {
	if len(metrics) == 0 {
		return []models.Recommendation{{
			Recommendation: "Недостаточно данных для формирования рекомендаций",
			Confidence:     models.ConfidenceLow,
			Reasoning:      "Не удалось извлечь ключевые финансовые метрики из отчета.",
		}}
	}

	var recs []models.Recommendation

	if revenue, ok := metrics["revenue"]; ok {
		recs = append(recs, models.Recommendation{
			Recommendation: "Обнаружены данные о выручке",
			Confidence:     models.ConfidenceMedium,
			Reasoning:      fmt.Sprintf("Выручка составляет %s. Для полного анализа требуется сравнение с предыдущими периодами.", formatMetric(revenue)),
		})
	}

	if eps, ok := metrics["eps"]; ok {
		recs = append(recs, models.Recommendation{
			Recommendation: "Обнаружены данные о прибыли на акцию (EPS)",
			Confidence:     models.ConfidenceMedium,
			Reasoning:      fmt.Sprintf("EPS составляет %s. Для полного анализа требуется сравнение с предыдущими периодами и ожиданиями аналитиков.", formatMetric(eps)),
		})
	}

	sentiment, positive, negative := ManagementSentiment(discussion)
	recs = append(recs, models.Recommendation{
		Recommendation: fmt.Sprintf("Тон руководства в описании результатов: %s", sentiment),
		Confidence:     models.ConfidenceMedium,
		Reasoning:      fmt.Sprintf("В разделе MD&A обнаружено %d позитивных и %d негативных индикаторов. Это может указывать на %s оценку руководством текущего положения компании.", positive, negative, sentiment),
	})

	if riskFactors != "" {
		riskCount := len(sentenceEnd.FindAllString(riskFactors, -1))
		if riskCount > 20 {
			recs = append(recs, models.Recommendation{
				Recommendation: "Компания сообщает о значительном количестве факторов риска",
				Confidence:     models.ConfidenceMedium,
				Reasoning:      fmt.Sprintf("Раздел Risk Factors содержит примерно %d пунктов, что может указывать на сложную операционную среду.", riskCount),
			})
		}
	}

	return recs
}

func formatMetric(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
