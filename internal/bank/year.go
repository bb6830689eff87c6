package bank

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Header phrases that sit next to the statement's governing year. The year is
// always the last capture group. Matched against lowercased text.
var commonYearPatterns = compileAll(
	`extrato.*?(\d{4})`,
	`per[ií]odo.*?\d{1,2}/\d{1,2}/(\d{4})`,
	`movimenta[çc][ãa]o.*?(\d{4})`,
	`(\d{4})\s*-\s*\d{1,2}`,
	`\d{1,2}/\d{1,2}/(\d{4})\s*a\s*\d{1,2}/\d{1,2}/\d{4}`,
)

var fullDatePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)

// detectStatementYear infers the year governing a document. Header phrases
// win (bank-specific patterns are tried before the common ones); otherwise
// the most frequent year among well-formed DD/MM/YYYY occurrences is used,
// with a bonus for years within one of the current year so that incidental
// old dates in boilerplate don't dominate. Falls back to the current year.
func detectStatementYear(text string, specific []*regexp.Regexp) int {
	lower := strings.ToLower(text)
	currentYear := time.Now().Year()

	patterns := make([]*regexp.Regexp, 0, len(specific)+len(commonYearPatterns))
	patterns = append(patterns, specific...)
	patterns = append(patterns, commonYearPatterns...)

	for _, pattern := range patterns {
		for _, m := range pattern.FindAllStringSubmatch(lower, -1) {
			year, err := strconv.Atoi(m[len(m)-1])
			if err != nil {
				continue
			}
			if year >= earliestValidYear && year <= currentYear+1 {
				return year
			}
		}
	}

	frequency := make(map[int]int)
	for _, m := range fullDatePattern.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		if day < 1 || day > 31 || month < 1 || month > 12 {
			continue
		}
		if year < earliestValidYear || year > currentYear+1 {
			continue
		}

		frequency[year]++
		if year >= currentYear-1 {
			frequency[year] += 2
		}
	}

	best, bestScore := 0, 0
	for year, score := range frequency {
		// Tie-break on the larger year so detection is deterministic.
		if score > bestScore || (score == bestScore && year > best) {
			best, bestScore = year, score
		}
	}
	if best > 0 {
		return best
	}

	return currentYear
}
