package bank

import (
	"regexp"
	"strconv"
	"strings"
)

// Default BRL amount patterns, most specific first: currency-prefixed grouped
// thousands, large ungrouped values, plain grouped thousands, simple
// two-decimal forms. Ungrouped values go before grouped ones so that a long
// digit run is never claimed by a partial grouped match. Each pattern
// captures the bare number.
var defaultValuePatterns = compileAll(
	`R\$\s*(\d{1,3}(?:\.\d{3})*,\d{2})`,
	`(\d{4,},\d{2})\b`,
	`(\d{1,3}(?:\.\d{3})*,\d{2})\b`,
	`R\$\s*(\d+,\d{2})`,
	`(\d+,\d{2})(?:\s|$)`,
)

// extractValues runs the ordered pattern set against the line and returns
// every positive amount found, normalized from Brazilian formatting. Each
// stretch of text is claimed by the first (most specific) pattern that
// matches it, so later, looser patterns cannot report the same number twice.
// Unparseable or non-positive matches are routine noise and are dropped
// silently.
func extractValues(line string, patterns []*regexp.Regexp) []float64 {
	var values []float64
	var claimed [][2]int

	for _, pattern := range patterns {
		for _, idx := range pattern.FindAllStringSubmatchIndex(line, -1) {
			// idx[2], idx[3] bound the first capture group.
			if len(idx) < 4 || idx[2] < 0 {
				continue
			}
			start, end := idx[2], idx[3]
			if overlapsAny(claimed, start, end) {
				continue
			}

			value, ok := parseAmount(line[start:end])
			if !ok || value <= 0 {
				continue
			}
			claimed = append(claimed, [2]int{start, end})
			values = append(values, value)
		}
	}

	return values
}

// parseAmount converts a Brazilian-formatted amount to a float. When both
// separators appear, "." groups thousands and "," marks decimals; a lone ","
// marks decimals.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")

	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ",", ".")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func overlapsAny(claimed [][2]int, start, end int) bool {
	for _, c := range claimed {
		if start < c[1] && end > c[0] {
			return true
		}
	}
	return false
}
