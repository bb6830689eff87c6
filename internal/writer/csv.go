package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/finlens/extrato-parser/internal/models"
)

// CSVWriter writes transactions to CSV format.
type CSVWriter struct {
	// IncludeReport prepends processing metadata as comment rows.
	IncludeReport bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction, report models.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, txns, report)
}

// Write writes transactions in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction, report models.Report) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeReport {
		if report.StrategyUsed != "" {
			writer.Write([]string{"# Bank", report.StrategyUsed})
		}
		if report.LayerUsed != "" {
			writer.Write([]string{"# Extraction Layer", report.LayerUsed})
		}
		writer.Write([]string{"# Pages Processed", strconv.Itoa(report.PagesProcessed)})
		writer.Write([]string{"# Transactions", strconv.Itoa(report.TransactionsFound)})
		if report.DroppedInvalidDates > 0 {
			writer.Write([]string{"# Dropped Invalid Dates", strconv.Itoa(report.DroppedInvalidDates)})
		}
	}

	header := []string{"Date", "Type", "Amount", "Description", "Bank"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txns {
		row := []string{
			txn.Date,
			string(txn.Type),
			strconv.FormatFloat(txn.Amount, 'f', 2, 64),
			txn.Description,
			txn.Bank,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
