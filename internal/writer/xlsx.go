package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/finlens/extrato-parser/internal/analyzer"
	"github.com/finlens/extrato-parser/internal/models"
)

const (
	transactionsSheet = "Transactions"
	summarySheet      = "Daily Summary"
)

// XLSXWriter writes transactions to an Excel workbook with a transactions
// sheet and a per-day summary sheet.
type XLSXWriter struct{}

// WriteToFile writes the workbook to path.
func (w *XLSXWriter) WriteToFile(path string, txns []models.Transaction, report models.Report) error {
	f, err := w.build(txns, report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Write streams the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, txns []models.Transaction, report models.Report) error {
	f, err := w.build(txns, report)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(txns []models.Transaction, report models.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), transactionsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Date", "Type", "Amount", "Description", "Bank", "Source"}
	if err := f.SetSheetRow(transactionsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, txn := range txns {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{txn.Date, string(txn.Type), txn.Amount, txn.Description, txn.Bank, txn.Source}
		if err := f.SetSheetRow(transactionsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summaryHeader := []interface{}{"Date", "Transactions", "Credits", "Debits", "Net"}
	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return nil, fmt.Errorf("failed to write summary header: %w", err)
	}
	for i, day := range analyzer.Summarize(txns) {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			day.Date,
			day.Count,
			day.TotalCredit.InexactFloat64(),
			day.TotalDebit.InexactFloat64(),
			day.Net.InexactFloat64(),
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row %d: %w", i+2, err)
		}
	}

	return f, nil
}
