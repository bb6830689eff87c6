// Package assemble turns per-page statement text into transaction records,
// carrying the date context across line and page boundaries.
package assemble

import (
	"math"
	"strings"

	"github.com/finlens/extrato-parser/internal/bank"
	"github.com/finlens/extrato-parser/internal/models"
)

// Significant amounts: anything outside this range is a code, a page number
// or an extraction error, not money.
const (
	MinSignificantValue = 1.00
	MaxSignificantValue = 50_000_000.00
)

// Assembler walks page lines with a bank strategy, folding the resolved date
// forward through the shared DocumentContext. One assembler serves one
// document; pages must be fed in original order.
type Assembler struct {
	strategy bank.Strategy
	doc      *models.DocumentContext
}

func New(strategy bank.Strategy, doc *models.DocumentContext) *Assembler {
	return &Assembler{strategy: strategy, doc: doc}
}

// ProcessPage extracts transaction candidates from one page. A line that
// resolves a date sets the context but is still checked for a transaction of
// its own; lines with no resolvable date inherit the context, and are dropped
// when no context exists yet.
func (a *Assembler) ProcessPage(text, source string) []models.Transaction {
	var transactions []models.Transaction

	for lineNum, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if a.strategy.IsIgnored(line) {
			continue
		}

		if date, ok := a.strategy.ExtractDate(line, a.doc.DetectedYear); ok {
			a.doc.CurrentDate = date
		}
		if a.doc.CurrentDate == "" {
			continue
		}

		if txn, ok := a.parseLine(line, a.doc.CurrentDate); ok {
			txn.Source = source
			txn.Line = lineNum + 1
			transactions = append(transactions, txn)
		}
	}

	return transactions
}

// ProcessPageBlocks is the secondary heuristic for pages where ProcessPage
// found little: date lines only advance the context and are never parsed as
// transactions themselves.
func (a *Assembler) ProcessPageBlocks(text, source string) []models.Transaction {
	var transactions []models.Transaction

	for lineNum, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if a.strategy.IsIgnored(line) {
			continue
		}

		if date, ok := a.strategy.ExtractDate(line, a.doc.DetectedYear); ok {
			a.doc.CurrentDate = date
			continue
		}
		if a.doc.CurrentDate == "" {
			continue
		}

		if txn, ok := a.parseLine(line, a.doc.CurrentDate); ok {
			txn.Source = source
			txn.Line = lineNum + 1
			transactions = append(transactions, txn)
		}
	}

	return transactions
}

// parseLine attempts full transaction parsing for a line whose date is
// already known. The maximum significant value on the line wins.
func (a *Assembler) parseLine(line, date string) (models.Transaction, bool) {
	values := a.strategy.ExtractValues(line)
	if len(values) == 0 {
		return models.Transaction{}, false
	}

	var significant []float64
	for _, v := range values {
		if v >= MinSignificantValue && v <= MaxSignificantValue {
			significant = append(significant, v)
		}
	}
	if len(significant) == 0 {
		return models.Transaction{}, false
	}

	amount := significant[0]
	for _, v := range significant[1:] {
		if v > amount {
			amount = v
		}
	}

	// Strategies with an indicator vocabulary demand either a recognizable
	// transaction word or a value that doesn't look like stray structure:
	// small round numbers without context are page numbers and codes.
	if indicators := a.strategy.TransactionIndicators(); len(indicators) > 0 {
		if !containsAny(strings.ToLower(line), indicators) {
			if amount < 1000.0 && amount == math.Trunc(amount) {
				return models.Transaction{}, false
			}
		}
	}

	return models.Transaction{
		Date:        date,
		Type:        a.strategy.Classify(line),
		Amount:      amount,
		Description: a.strategy.ExtractDescription(line),
		Bank:        a.strategy.Name(),
	}, true
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
