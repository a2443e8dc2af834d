package report

import (
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// KEY METRIC PROBES
// =============================================================================

// Each metric has an ordered probe list; the first pattern whose captured
// token parses as a float wins and later patterns are not tried.
var metricProbes = []struct {
	Name     string
	Patterns []*regexp.Regexp
}{
	{
		Name: "revenue",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:total\s+)?revenue[s]?[\s:]+[$\s]*([\d,.]+)(?:\s*million|\s*billion)?`),
			regexp.MustCompile(`(?i)net\s+revenue[s]?[\s:]+[$\s]*([\d,.]+)(?:\s*million|\s*billion)?`),
		},
	},
	{
		Name: "net_income",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)net\s+income[\s:]+[$\s]*([\d,.]+)(?:\s*million|\s*billion)?`),
			regexp.MustCompile(`(?i)income\s+(?:before|after)\s+(?:income\s+)?tax(?:es)?[\s:]+[$\s]*([\d,.]+)(?:\s*million|\s*billion)?`),
		},
	},
	{
		Name: "eps",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:diluted\s+)?earnings\s+per\s+(?:common\s+)?share[\s:]+[$\s]*([\d,.]+)`),
			regexp.MustCompile(`(?i)(?:basic\s+)?earnings\s+per\s+(?:common\s+)?share[\s:]+[$\s]*([\d,.]+)`),
		},
	},
}

// ExtractKeyMetrics probes the whole text for revenue, net income and EPS.
// A metric whose numeric token fails to parse is simply omitted; the map
// never contains keys outside the fixed vocabulary.
func ExtractKeyMetrics(text string) map[string]float64 {
	metrics := make(map[string]float64)

	for _, probe := range metricProbes {
		for _, pattern := range probe.Patterns {
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil {
				continue
			}
			metrics[probe.Name] = value
			break
		}
	}

	return metrics
}
