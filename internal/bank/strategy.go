package bank

import (
	"regexp"
	"strings"

	"github.com/finlens/extrato-parser/internal/models"
)

// Strategy bundles the institution-specific extraction behaviours: the
// pattern sets, the date resolver, the credit/debit classifier and the
// description cleaner. A generic strategy handles institutions without a
// dedicated one, at lower precision.
type Strategy interface {
	ID() string
	Name() string
	Code() string
	Description() string

	// IsIgnored reports whether the line is structural boilerplate (page
	// numbers, account labels, legal text) that must never be parsed.
	IsIgnored(line string) bool

	// ExtractDate resolves a normalized DD/MM/YYYY date from the line,
	// completing missing years from the detected statement year.
	ExtractDate(line string, detectedYear int) (string, bool)

	// ExtractValues returns every positive amount found on the line.
	ExtractValues(line string) []float64

	// Classify decides Credit or Debit for the line.
	Classify(line string) models.TransactionType

	// ExtractDescription strips dates, amounts and bank boilerplate from the
	// line, falling back to the raw line when too little remains.
	ExtractDescription(line string) string

	// DetectStatementYear infers the year governing the document from a
	// sample of its text.
	DetectStatementYear(text string) int

	// TransactionIndicators are vocabulary fragments whose absence, combined
	// with a suspicious value, marks a line as noise. Empty means the
	// strategy's ignore patterns are precise enough not to need them.
	TransactionIndicators() []string

	CreditKeywords() []string
	DebitKeywords() []string
}

// strategy is the shared implementation; each institution supplies its own
// tables to newStrategy and (optionally) extra deny/year patterns.
type strategy struct {
	id          string
	name        string
	code        string
	description string

	datePatterns    []*regexp.Regexp
	dateDeny        []*regexp.Regexp
	valuePatterns   []*regexp.Regexp
	ignorePatterns  []*regexp.Regexp
	creditKeywords  []string
	debitKeywords   []string
	creditCues      []*regexp.Regexp
	debitCues       []*regexp.Regexp
	indicators      []string
	cleanupPatterns []*regexp.Regexp
	yearPatterns    []*regexp.Regexp

	fallbackType models.TransactionType
}

func (s *strategy) ID() string          { return s.id }
func (s *strategy) Name() string        { return s.name }
func (s *strategy) Code() string        { return s.code }
func (s *strategy) Description() string { return s.description }

func (s *strategy) CreditKeywords() []string        { return s.creditKeywords }
func (s *strategy) DebitKeywords() []string         { return s.debitKeywords }
func (s *strategy) TransactionIndicators() []string { return s.indicators }

func (s *strategy) IsIgnored(line string) bool {
	lower := strings.ToLower(line)
	for _, pattern := range s.ignorePatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

func (s *strategy) ExtractDate(line string, detectedYear int) (string, bool) {
	return resolveDate(line, s.datePatterns, s.dateDeny, detectedYear)
}

func (s *strategy) ExtractValues(line string) []float64 {
	return extractValues(line, s.valuePatterns)
}

func (s *strategy) DetectStatementYear(text string) int {
	return detectStatementYear(text, s.yearPatterns)
}

// Classify searches the credit vocabulary first, then the debit vocabulary,
// then the secondary positional cues (sign prefixes, stem regexes). Lines
// that remain ambiguous get the configured fallback type.
func (s *strategy) Classify(line string) models.TransactionType {
	lower := strings.ToLower(line)

	for _, keyword := range s.creditKeywords {
		if strings.Contains(lower, keyword) {
			return models.Credit
		}
	}
	for _, keyword := range s.debitKeywords {
		if strings.Contains(lower, keyword) {
			return models.Debit
		}
	}

	for _, cue := range s.creditCues {
		if cue.MatchString(lower) {
			return models.Credit
		}
	}
	for _, cue := range s.debitCues {
		if cue.MatchString(lower) {
			return models.Debit
		}
	}

	if signCredit.MatchString(line) {
		return models.Credit
	}
	if signDebit.MatchString(line) {
		return models.Debit
	}

	return s.fallbackType
}

var (
	signCredit = regexp.MustCompile(`\+\s*\d`)
	signDebit  = regexp.MustCompile(`-\s*\d`)

	multiSpace = regexp.MustCompile(`\s+`)
)

// ExtractDescription applies the strategy's cleanup patterns, collapses
// whitespace and capitalizes the first letter. Descriptions shorter than 5
// characters after cleaning are replaced with the raw line.
func (s *strategy) ExtractDescription(line string) string {
	description := strings.TrimSpace(line)

	for _, pattern := range s.cleanupPatterns {
		description = pattern.ReplaceAllString(description, "")
	}
	description = strings.TrimSpace(multiSpace.ReplaceAllString(description, " "))

	if len([]rune(description)) < 5 {
		description = strings.TrimSpace(line)
	}
	if description == "" {
		return strings.TrimSpace(line)
	}

	runes := []rune(description)
	return strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
}
