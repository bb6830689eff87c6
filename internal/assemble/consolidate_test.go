package assemble

import (
	"testing"

	"github.com/finlens/extrato-parser/internal/models"
)

func TestConsolidateDeduplicates(t *testing.T) {
	candidates := []models.Transaction{
		{Date: "03/07/2025", Type: models.Credit, Amount: 100.00, Description: "Pix recebido joao"},
		{Date: "03/07/2025", Type: models.Credit, Amount: 100.00, Description: "Pix recebido (duplicata de outra camada)"},
		{Date: "03/07/2025", Type: models.Debit, Amount: 100.00, Description: "Pix enviado"},
		{Date: "04/07/2025", Type: models.Credit, Amount: 100.00, Description: "Pix recebido outro dia"},
	}

	txns, dropped := Consolidate(candidates)
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
	if len(txns) != 3 {
		t.Fatalf("got %d transactions, want 3 (same date+type+amount deduped)", len(txns))
	}
	// First occurrence wins.
	if txns[0].Description != "Pix recebido joao" {
		t.Errorf("first kept description = %q", txns[0].Description)
	}
}

func TestConsolidateSortsChronologically(t *testing.T) {
	candidates := []models.Transaction{
		{Date: "01/08/2025", Type: models.Credit, Amount: 3},
		{Date: "03/07/2025", Type: models.Credit, Amount: 1},
		{Date: "31/07/2025", Type: models.Credit, Amount: 2},
	}

	txns, _ := Consolidate(candidates)
	want := []string{"03/07/2025", "31/07/2025", "01/08/2025"}
	for i, date := range want {
		if txns[i].Date != date {
			t.Errorf("position %d = %s, want %s", i, txns[i].Date, date)
		}
	}
}

// Same-day transactions keep their extraction order.
func TestConsolidateStableWithinDay(t *testing.T) {
	candidates := []models.Transaction{
		{Date: "03/07/2025", Type: models.Credit, Amount: 1, Description: "primeiro"},
		{Date: "03/07/2025", Type: models.Debit, Amount: 2, Description: "segundo"},
		{Date: "03/07/2025", Type: models.Credit, Amount: 3, Description: "terceiro"},
	}

	txns, _ := Consolidate(candidates)
	if len(txns) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txns))
	}
	for i, want := range []string{"primeiro", "segundo", "terceiro"} {
		if txns[i].Description != want {
			t.Errorf("position %d = %q, want %q", i, txns[i].Description, want)
		}
	}
}

func TestConsolidateDropsInvalidDates(t *testing.T) {
	candidates := []models.Transaction{
		{Date: "03/07/2025", Type: models.Credit, Amount: 1},
		{Date: "99/99/9999", Type: models.Credit, Amount: 2},
		{Date: "", Type: models.Credit, Amount: 3},
	}

	txns, dropped := Consolidate(candidates)
	if len(txns) != 1 {
		t.Errorf("got %d transactions, want 1", len(txns))
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
}

func TestConsolidateEmpty(t *testing.T) {
	txns, dropped := Consolidate(nil)
	if len(txns) != 0 || dropped != 0 {
		t.Errorf("Consolidate(nil) = %d txns, %d dropped; want 0, 0", len(txns), dropped)
	}
}
