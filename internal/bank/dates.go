package bank

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// nonDateChars strips anything that cannot be part of a date or its label so
// that noisy separators don't break the anchored patterns.
var nonDateChars = regexp.MustCompile(`[^\w\s/.-]`)

// denyPatterns are shapes that look like dates but are actually account,
// reference or protocol numbers. A line matching any of them never yields a
// date, no matter what else it contains.
var denyPatterns = compileAll(
	`pix\s+\d+`,
	`\d{10,}`,
	`conta\s+\d+`,
	`agencia\s+\d+`,
	`codigo\s+\d+`,
	`ref\s*[:.]?\s*\d+`,
	`documento\s+\d+`,
	`seq\s*[:.]?\s*\d+`,
	`\b\d{6,}\b`,
	`valor\s+\d+`,
	`protocolo\s+\d+`,
	`autenticacao\s+\d+`,
	`comprovante\s+\d+`,
)

// Candidate dates outside this window are rejected: statements older than
// 2020 are not processed, and anything further than two years ahead is OCR
// noise rather than a real booking date.
const earliestValidYear = 2020

// resolveDate tries the ordered pattern list against the line and returns
// the first candidate that survives year completion and calendar validation,
// normalized to DD/MM/YYYY. Patterns must capture (day, month) or
// (day, month, year).
func resolveDate(line string, patterns, extraDeny []*regexp.Regexp, detectedYear int) (string, bool) {
	clean := nonDateChars.ReplaceAllString(line, " ")
	lower := strings.ToLower(clean)

	for _, deny := range denyPatterns {
		if deny.MatchString(lower) {
			return "", false
		}
	}
	for _, deny := range extraDeny {
		if deny.MatchString(lower) {
			return "", false
		}
	}

	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(clean)
		if m == nil {
			continue
		}

		groups := m[1:]
		var dayStr, monthStr, yearStr string
		switch len(groups) {
		case 2:
			dayStr, monthStr = groups[0], groups[1]
			yearStr = strconv.Itoa(statementYearOrNow(detectedYear))
		case 3:
			dayStr, monthStr, yearStr = groups[0], groups[1], groups[2]
			yearStr = completeYear(yearStr, detectedYear)
		default:
			continue
		}

		day, err := strconv.Atoi(dayStr)
		if err != nil {
			continue
		}
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			continue
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			continue
		}

		if day < 1 || day > 31 || month < 1 || month > 12 {
			continue
		}
		if !isRealDate(day, month, year) {
			continue
		}
		if year < earliestValidYear || year > time.Now().Year()+2 {
			continue
		}

		return fmt.Sprintf("%02d/%02d/%04d", day, month, year), true
	}

	return "", false
}

// completeYear expands 2-digit years (<=50 means 20YY) and overrides explicit
// 4-digit years that disagree with the detected statement year by more than
// one, which defends against OCR digit corruption.
func completeYear(yearStr string, detectedYear int) string {
	if len(yearStr) == 2 {
		yy, err := strconv.Atoi(yearStr)
		if err != nil {
			return yearStr
		}
		if yy <= 50 {
			return "20" + yearStr
		}
		return "19" + yearStr
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return yearStr
	}
	statementYear := statementYearOrNow(detectedYear)
	if abs(year-statementYear) > 1 {
		return strconv.Itoa(statementYear)
	}
	return yearStr
}

func statementYearOrNow(detectedYear int) int {
	if detectedYear > 0 {
		return detectedYear
	}
	return time.Now().Year()
}

// isRealDate checks the candidate against the actual calendar (31/02 and the
// like are rejected).
func isRealDate(day, month, year int) bool {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month && t.Year() == year
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
