package extract

import (
	"regexp"
	"strings"

	"investagent/pkg/models"
)

// =============================================================================
// SECTION LOCATOR
// =============================================================================

const (
	// sectionWindow is how much text we capture from a heading match.
	sectionWindow = 5000
	// keywordWindow is the symmetric context taken around a fallback keyword hit.
	keywordWindow = 1000
	// maxSectionFacts bounds the numeric payload attached to a section.
	maxSectionFacts = 30
	// contentDisplayLimit bounds the content excerpt returned to callers.
	contentDisplayLimit = 1500
)

// sectionPatterns maps canonical section names to ordered heading patterns.
// Order matters: the first pattern with a match wins and later ones are
// never tried.
var sectionPatterns = map[string][]string{
	"assets": {
		`(?:total|current)\s+assets`,
		`assets\s+section`,
		`consolidated\s+balance\s+sheets?.*?assets`,
		`statement\s+of\s+financial\s+position.*?assets`,
		`balance\s+sheets?.*?assets`,
	},
	"liabilities": {
		`(?:total|current)\s+liabilities`,
		`liabilities\s+section`,
		`consolidated\s+balance\s+sheets?.*?liabilities`,
		`statement\s+of\s+financial\s+position.*?liabilities`,
		`balance\s+sheets?.*?liabilities`,
	},
	"equity": {
		`(?:stockholders'?|shareholders'?)\s+equity`,
		`equity\s+section`,
		`total\s+equity`,
		`(?:stockholders'?|shareholders'?)\s+(?:equity|investment)`,
	},
	"revenue": {
		`(?:total\s+)?revenue[s]?`,
		`net\s+revenue[s]?`,
		`sales\s+revenue`,
		`consolidated\s+statements?\s+of\s+(?:income|operations|earnings).*?revenue`,
	},
	"income": {
		`net\s+income`,
		`operating\s+income`,
		`income\s+(?:before|after)\s+tax(?:es)?`,
		`consolidated\s+statements?\s+of\s+(?:income|operations|earnings)`,
		`statements?\s+of\s+comprehensive\s+income`,
	},
	"cash_flow": {
		`cash\s+flow[s]?`,
		`cash\s+and\s+cash\s+equivalents`,
		`operating\s+activities`,
		`consolidated\s+statements?\s+of\s+cash\s+flows?`,
		`statements?\s+of\s+cash\s+flows?`,
	},
	"balance_sheet": {
		`consolidated\s+balance\s+sheets?`,
		`balance\s+sheets?`,
		`statement\s+of\s+financial\s+position`,
	},
	"income_statement": {
		`consolidated\s+statements?\s+of\s+(?:income|operations|earnings)`,
		`statements?\s+of\s+(?:income|operations|earnings)`,
		`statements?\s+of\s+comprehensive\s+income`,
	},
}

// relatedTerms is the fallback synonym table used when no heading pattern
// matches, and is also exposed directly as a tool.
var relatedTerms = map[string][]string{
	"assets": {
		"assets", "total assets", "current assets", "non-current assets",
		"cash", "cash equivalents", "accounts receivable", "inventory",
		"property", "equipment", "investments", "goodwill", "intangible",
	},
	"liabilities": {
		"liabilities", "total liabilities", "current liabilities", "long-term liabilities",
		"accounts payable", "debt", "loans", "borrowings", "obligations", "accrued",
	},
	"equity": {
		"equity", "stockholders' equity", "shareholders' equity", "common stock",
		"retained earnings", "treasury stock", "additional paid-in capital",
	},
	"revenue": {
		"revenue", "net revenue", "gross revenue", "sales", "total revenue",
		"service revenue", "product revenue",
	},
	"income": {
		"income", "net income", "profit", "earnings", "ebitda",
		"operating income", "income before tax", "comprehensive income",
	},
	"cash_flow": {
		"cash flow", "operating activities", "investing activities", "financing activities",
		"cash provided by", "cash used in", "net cash", "cash and cash equivalents",
	},
	"balance_sheet": {
		"balance sheet", "consolidated balance sheets", "statement of financial position",
		"assets", "liabilities", "equity", "current", "non-current",
	},
	"income_statement": {
		"income statement", "statement of operations", "statement of earnings",
		"revenue", "expenses", "costs", "income", "earnings per share", "eps",
	},
}

// genericKeywords is returned for section names with no curated synonym list.
var genericKeywords = []string{"financial", "balance", "income", "cash", "statement", "total", "net"}

// RelatedKeywords returns the synonym list for a canonical section name, or a
// generic financial-term list for unknown names. The caller gets a copy.
func RelatedKeywords(sectionName string) []string {
	terms, ok := relatedTerms[strings.ToLower(sectionName)]
	if !ok {
		terms = genericKeywords
	}
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

// LocateSection finds a named financial-statement section in the full report
// text. Heading patterns are tried in table order; the first match captures a
// fixed window from its start offset. When no heading matches, the first five
// related keywords are tried as whole words with a smaller symmetric window.
// The second return is false when neither tier finds anything.
//
// On success the captured content is run through the fact extractor (capped)
// and the narrative analyzer; the Content field is a truncated display
// excerpt, not the full extraction window.
func LocateSection(fullText, sectionName string) (models.SectionMatch, bool) {
	patterns, ok := sectionPatterns[strings.ToLower(sectionName)]
	if !ok {
		// Free-form request: the raw name is the sole pattern.
		patterns = []string{regexp.QuoteMeta(sectionName)}
	}

	var content string
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			continue
		}
		if loc := re.FindStringIndex(fullText); loc != nil {
			content = fullText[loc[0]:min(loc[0]+sectionWindow, len(fullText))]
			break
		}
	}

	if content == "" {
		keywords := RelatedKeywords(sectionName)
		if len(keywords) > 5 {
			keywords = keywords[:5]
		}
		for _, word := range keywords {
			re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
			loc := re.FindStringIndex(fullText)
			if loc == nil {
				continue
			}
			start := max(0, loc[0]-keywordWindow)
			end := min(len(fullText), loc[1]+keywordWindow)
			content = fullText[start:end]
			break
		}
	}

	if content == "" {
		return models.SectionMatch{}, false
	}

	facts := NumericFacts(content)
	if len(facts) > maxSectionFacts {
		facts = facts[:maxSectionFacts]
	}

	display := content
	if len(display) > contentDisplayLimit {
		display = display[:contentDisplayLimit] + "..."
	}

	return models.SectionMatch{
		Name:     sectionName,
		Content:  display,
		Facts:    facts,
		Analysis: AnalyzeSectionContent(sectionName, content, facts),
	}, true
}
