package bank

import (
	"regexp"
	"strings"
)

// Detection is deliberately not part of the extraction path: strategy
// selection is a mandatory caller input because sniffing reduces precision.
// Detect exists as an auxiliary utility for upstream selectors only.

var detectionPatterns = map[string][]*regexp.Regexp{
	"santander": compileAll(
		`banco\s+santander`,
		`santander\s+brasil`,
		`033\s*-?\s*santander`,
		`santander.*s\.?a\.?`,
		`conta\s+corrente\s+santander`,
		`extrato\s+santander`,
		`way\s+santander`,
		`santander\s+pay`,
	),
	"itau": compileAll(
		`banco\s+ita[úu]`,
		`ita[úu]\s+unibanco`,
		`341\s*-?\s*ita[úu]`,
		`extrato\s+ita[úu]`,
		`bankline`,
	),
}

// Detect tries to identify the institution from statement text. It returns
// the strategy id and true on a match, or "" and false when no institution
// pattern matches.
func Detect(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, id := range []string{"santander", "itau"} {
		for _, pattern := range detectionPatterns[id] {
			if pattern.MatchString(lower) {
				return id, true
			}
		}
	}
	return "", false
}
