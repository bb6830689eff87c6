package models

import "time"

// DateLayout is the textual form every transaction date is normalized to.
const DateLayout = "02/01/2006"

// TransactionType classifies a statement entry as money in or money out.
type TransactionType string

const (
	Credit TransactionType = "CREDIT"
	Debit  TransactionType = "DEBIT"
)

// Transaction represents a single statement entry extracted from a document.
type Transaction struct {
	Date        string          `json:"date"` // DD/MM/YYYY
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Source      string          `json:"source,omitempty"` // which page/heuristic produced it
	Line        int             `json:"line,omitempty"`
	Bank        string          `json:"bank,omitempty"`
}

// Time parses the transaction date. An error means the date never passed
// validation and the record should have been dropped during consolidation.
func (t Transaction) Time() (time.Time, error) {
	return time.Parse(DateLayout, t.Date)
}

// DocumentContext carries the per-document state that must fold forward
// across line and page boundaries: the detected statement year and the most
// recently resolved date. It is owned by a single pipeline execution and is
// never shared between documents.
type DocumentContext struct {
	DetectedYear int
	CurrentDate  string // DD/MM/YYYY, empty until the first date resolves
}

// Report summarizes one pipeline execution.
type Report struct {
	PagesProcessed      int      `json:"pagesProcessed"`
	TransactionsFound   int      `json:"transactionsFound"`
	StrategyUsed        string   `json:"strategyUsed"`
	LayerUsed           string   `json:"layerUsed,omitempty"`
	DroppedInvalidDates int      `json:"droppedInvalidDates"`
	SkippedLayers       []string `json:"skippedLayers,omitempty"`
	Guidance            []string `json:"guidance,omitempty"`
}
