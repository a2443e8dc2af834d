package utils

import (
	"fmt"
	"math"
	"strings"
)

// groupThousands inserts comma separators into the integer part of a
// formatted decimal string, e.g. "1234567.89" -> "1,234,567.89".
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatCurrency renders a monetary value with thousands separators and two
// decimal places. USD gets the "$" prefix, other codes are suffixed.
func FormatCurrency(value float64, currency string) string {
	formatted := groupThousands(fmt.Sprintf("%.2f", value))
	if currency == "USD" || currency == "" {
		return "$" + formatted
	}
	return formatted + " " + currency
}

// FormatAmount renders a dollar amount for narrative output: whole dollars
// for values of a thousand or more, cents otherwise.
func FormatAmount(value float64) string {
	if value >= 1000 {
		return "$" + groupThousands(fmt.Sprintf("%.0f", value))
	}
	return "$" + groupThousands(fmt.Sprintf("%.2f", value))
}

// GrowthRate returns the percent change from previous to current. A zero
// previous value yields +/-Inf depending on the sign of current, matching
// the conventional "undefined base" treatment rather than an error.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		switch {
		case current > 0:
			return math.Inf(1)
		case current < 0:
			return math.Inf(-1)
		default:
			return 0
		}
	}
	return (current - previous) / math.Abs(previous) * 100
}
