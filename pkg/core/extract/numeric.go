// Package extract implements the report extraction pipeline: locating named
// financial-statement sections in raw filing text and pulling structured
// numeric facts out of them. All functions here are pure computation over
// their inputs; repeated calls on identical text produce identical output.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"investagent/pkg/models"
)

// =============================================================================
// NUMERIC FACT EXTRACTOR
// =============================================================================

var (
	// Currency-marked family: label, separator, optional currency symbol, number.
	// The symbol capture decides confidence.
	moneyPattern = regexp.MustCompile(`([A-Za-z][A-Za-z\s\-,()&]{4,99})[:.\s]+([$€£]?)\s*([\d,.]+)`)

	// Plain tabular family: same shape, no currency symbol. Covers table rows
	// that omit "$".
	tablePattern = regexp.MustCompile(`([A-Za-z][A-Za-z\s\-,()&]{4,99})[:.\s]+([\d,.]+)`)
)

// priorityKeywords sort first within a confidence tier.
var priorityKeywords = []string{"total", "net", "revenue", "income", "assets", "liabilities"}

// scaleWindow is how far past the matched number we look for a scale word.
const scaleWindow = 30

// NumericFacts scans a text span for "description -> value" pairs, resolving
// scale suffixes (thousand/million/billion, K/M/B) and assigning confidence:
// high when a currency symbol sits between the label and the number, medium
// otherwise. Candidates whose numeric token does not parse are discarded.
//
// The result is ordered by confidence tier (high first), then by whether the
// description contains a priority keyword. The order is deterministic.
func NumericFacts(text string) []models.NumericFact {
	if text == "" {
		return nil
	}

	var facts []models.NumericFact
	index := make(map[string]int) // trimmed description -> position in facts

	// Pass 1: currency-marked matches. A later high-confidence hit replaces an
	// earlier medium one for the same description, so a "$500 million" line
	// wins over a bare tabular repeat of the same label.
	for _, m := range moneyPattern.FindAllStringSubmatchIndex(text, -1) {
		desc := strings.TrimSpace(text[m[2]:m[3]])
		symbol := text[m[4]:m[5]]
		rawValue := text[m[6]:m[7]]

		value, ok := parseScaledValue(rawValue, text, m[7])
		if !ok {
			continue
		}

		confidence := models.ConfidenceMedium
		if symbol != "" {
			confidence = models.ConfidenceHigh
		}

		fact := models.NumericFact{
			Description: desc,
			Value:       value,
			RawValue:    rawValue,
			Confidence:  confidence,
		}

		if pos, seen := index[desc]; seen {
			if facts[pos].Confidence == models.ConfidenceMedium && confidence == models.ConfidenceHigh {
				facts[pos] = fact
			}
			continue
		}
		index[desc] = len(facts)
		facts = append(facts, fact)
	}

	// Pass 2: plain tabular matches, skipping descriptions already captured.
	for _, m := range tablePattern.FindAllStringSubmatchIndex(text, -1) {
		desc := strings.TrimSpace(text[m[2]:m[3]])
		if _, seen := index[desc]; seen {
			continue
		}

		rawValue := text[m[4]:m[5]]
		value, ok := parseScaledValue(rawValue, text, m[5])
		if !ok {
			continue
		}

		index[desc] = len(facts)
		facts = append(facts, models.NumericFact{
			Description: desc,
			Value:       value,
			RawValue:    rawValue,
			Confidence:  models.ConfidenceMedium,
		})
	}

	sortFacts(facts)
	return facts
}

// parseScaledValue parses a numeric token and applies the scale word found in
// the window following the match, if any. Returns false when the token is not
// a valid number (malformed separators and the like).
func parseScaledValue(rawValue, text string, end int) (float64, bool) {
	clean := strings.ReplaceAll(rawValue, ",", "")
	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return value * scaleMultiplier(text, end), true
}

// scaleMultiplier inspects the characters following the matched number for a
// scale word. Full words anywhere in the window; single letters K/M/B only
// directly after the number.
func scaleMultiplier(text string, end int) float64 {
	window := text[end:min(end+scaleWindow, len(text))]
	near := text[end:min(end+5, len(text))]
	lower := strings.ToLower(window)

	switch {
	case strings.Contains(lower, "million"):
		return 1e6
	case strings.Contains(lower, "billion"):
		return 1e9
	case strings.Contains(lower, "thousand") || strings.Contains(near, "K"):
		return 1e3
	case strings.Contains(near, "M"):
		return 1e6
	case strings.Contains(near, "B"):
		return 1e9
	default:
		return 1
	}
}

// sortFacts orders by confidence tier, then priority-keyword presence.
// Deliberately a stable two-key sort, not a value sort.
func sortFacts(facts []models.NumericFact) {
	sort.SliceStable(facts, func(i, j int) bool {
		ri, rj := confidenceRank(facts[i].Confidence), confidenceRank(facts[j].Confidence)
		if ri != rj {
			return ri < rj
		}
		return priorityRank(facts[i].Description) < priorityRank(facts[j].Description)
	})
}

func confidenceRank(c models.Confidence) int {
	switch c {
	case models.ConfidenceHigh:
		return 0
	case models.ConfidenceMedium:
		return 1
	default:
		return 2
	}
}

func priorityRank(description string) int {
	lower := strings.ToLower(description)
	for _, kw := range priorityKeywords {
		if strings.Contains(lower, kw) {
			return 0
		}
	}
	return 1
}
