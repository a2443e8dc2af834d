// Package report orchestrates whole-document analysis: text extraction,
// report/period/company detection, metric probes, sentiment and
// recommendation assembly, and the human-readable digest.
package report

import (
	"regexp"
	"strings"
)

// =============================================================================
// FINANCIAL STATEMENT TABLES
// =============================================================================

// statementOrder fixes the scan (and output) order of the statement tables.
var statementOrder = []string{"income_statement", "balance_sheet", "cash_flow", "stockholders_equity"}

var statementPatterns = map[string]*regexp.Regexp{
	"income_statement":    regexp.MustCompile(`(?i)(consolidated\s+statements?\s+of\s+(?:income|operations|earnings)|statements?\s+of\s+(?:income|operations|earnings))`),
	"balance_sheet":       regexp.MustCompile(`(?i)(consolidated\s+balance\s+sheets?|balance\s+sheets?)`),
	"cash_flow":           regexp.MustCompile(`(?i)(consolidated\s+statements?\s+of\s+cash\s+flows?|statements?\s+of\s+cash\s+flows?)`),
	"stockholders_equity": regexp.MustCompile(`(?i)(consolidated\s+statements?\s+of\s+(?:stockholders'?|shareholders'?)\s+equity|statements?\s+of\s+(?:stockholders'?|shareholders'?)\s+equity)`),
}

// FindFinancialTables locates the four primary statement sections by their
// headings. Each found section runs from its heading to the first other
// statement heading appearing at least 1000 characters later, or to the end
// of the document.
func FindFinancialTables(text string) map[string]string {
	sections := make(map[string]string)

	for _, name := range statementOrder {
		pattern := statementPatterns[name]
		loc := pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		start := loc[0]

		end := len(text)
		if start+1000 < len(text) {
			rest := text[start+1000:]
			for _, otherName := range statementOrder {
				if otherName == name {
					continue
				}
				if otherLoc := statementPatterns[otherName].FindStringIndex(rest); otherLoc != nil {
					if candidate := start + 1000 + otherLoc[0]; candidate < end {
						end = candidate
					}
				}
			}
		}

		sections[name] = strings.TrimSpace(text[start:end])
	}

	return sections
}

// StatementNames returns the names of the sections found by
// FindFinancialTables in the fixed scan order.
func StatementNames(sections map[string]string) []string {
	var names []string
	for _, name := range statementOrder {
		if _, ok := sections[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
