package assemble

import (
	"testing"

	"github.com/finlens/extrato-parser/internal/bank"
	"github.com/finlens/extrato-parser/internal/models"
)

func newAssembler(t *testing.T) (*Assembler, *models.DocumentContext) {
	t.Helper()
	doc := &models.DocumentContext{DetectedYear: 2025}
	return New(bank.NewGeneric(models.Credit), doc), doc
}

func TestProcessPageCarriesDateAcrossLines(t *testing.T) {
	asm, _ := newAssembler(t)

	page := `03/07/2025
PIX RECEBIDO JOAO SILVA R$ 1.234,56
PAGAMENTO BOLETO ENERGIA R$ 189,90
TED RECEBIDA EMPRESA LTDA R$ 5.000,00`

	txns := asm.ProcessPage(page, "text:page-1")
	if len(txns) != 3 {
		t.Fatalf("got %d transactions, want 3: %+v", len(txns), txns)
	}
	for _, txn := range txns {
		if txn.Date != "03/07/2025" {
			t.Errorf("transaction date = %q, want 03/07/2025", txn.Date)
		}
	}
	if txns[0].Type != models.Credit || txns[0].Amount != 1234.56 {
		t.Errorf("first transaction = %+v", txns[0])
	}
	if txns[1].Type != models.Debit {
		t.Errorf("boleto payment classified as %s, want DEBIT", txns[1].Type)
	}
}

// A date resolved on the last line of one page governs value-only lines at
// the top of the next page.
func TestDateContextSurvivesPageBreak(t *testing.T) {
	asm, doc := newAssembler(t)

	pageOne := `03/07/2025 PIX RECEBIDO JOAO R$ 100,00
PAGAMENTO BOLETO AGUA R$ 80,50
COMPRA CARTAO PADARIA R$ 15,90`
	pageTwo := `SAQUE 24H TERMINAL R$ 200,00
TED RECEBIDA EMPRESA R$ 3.000,00
TARIFA PACOTE SERVICOS R$ 24,90`

	first := asm.ProcessPage(pageOne, "text:page-1")
	second := asm.ProcessPage(pageTwo, "text:page-2")

	if doc.CurrentDate != "03/07/2025" {
		t.Fatalf("context date = %q, want 03/07/2025", doc.CurrentDate)
	}
	total := len(first) + len(second)
	if total != 6 {
		t.Fatalf("got %d transactions across pages, want 6", total)
	}
	for _, txn := range second {
		if txn.Date != "03/07/2025" {
			t.Errorf("page-2 transaction date = %q, want inherited 03/07/2025", txn.Date)
		}
		if txn.Source != "text:page-2" {
			t.Errorf("page-2 transaction source = %q", txn.Source)
		}
	}
}

func TestLinesBeforeAnyDateAreDropped(t *testing.T) {
	asm, _ := newAssembler(t)

	page := `PIX RECEBIDO SEM DATA R$ 100,00
03/07/2025 PIX RECEBIDO COM DATA R$ 50,00`

	txns := asm.ProcessPage(page, "text:page-1")
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if txns[0].Amount != 50.00 {
		t.Errorf("kept the undated transaction: %+v", txns[0])
	}
}

func TestPageFooterNeverBecomesTransaction(t *testing.T) {
	asm, _ := newAssembler(t)

	page := `03/07/2025 PIX RECEBIDO JOAO R$ 100,00
Página 3 de 50
SALDO ANTERIOR 9.999,99`

	txns := asm.ProcessPage(page, "text:page-1")
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1: %+v", len(txns), txns)
	}
	if txns[0].Amount != 100.00 {
		t.Errorf("unexpected transaction: %+v", txns[0])
	}
}

func TestInsignificantValuesAreSkipped(t *testing.T) {
	asm, _ := newAssembler(t)

	page := `03/07/2025
JUROS RENDIMENTO R$ 0,45
PIX RECEBIDO VALOR ABSURDO R$ 99.000.000,00`

	if txns := asm.ProcessPage(page, "text:page-1"); len(txns) != 0 {
		t.Errorf("got %d transactions, want 0: %+v", len(txns), txns)
	}
}

func TestMaxValueOnLineWins(t *testing.T) {
	asm, _ := newAssembler(t)

	page := `03/07/2025 PIX RECEBIDO JOAO R$ 1.500,00 SALDO 10.000,00 TAXA 2,50`

	txns := asm.ProcessPage(page, "text:page-1")
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if txns[0].Amount != 10000.00 {
		t.Errorf("amount = %f, want the line maximum 10000.00", txns[0].Amount)
	}
}

func TestSuspiciousRoundValueWithoutIndicatorDropped(t *testing.T) {
	asm, _ := newAssembler(t)

	page := `03/07/2025
REGISTRO 500,00`

	if txns := asm.ProcessPage(page, "text:page-1"); len(txns) != 0 {
		t.Errorf("small round value without transaction vocabulary should be dropped: %+v", txns)
	}
}

func TestProcessPageBlocksSkipsDateLines(t *testing.T) {
	asm, _ := newAssembler(t)

	// The date header itself carries a value-looking token; block mode must
	// advance the context without emitting a transaction for it.
	page := `03/07/2025 1.234,56
PIX RECEBIDO JOAO R$ 100,00`

	txns := asm.ProcessPageBlocks(page, "text:page-1")
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1: %+v", len(txns), txns)
	}
	if txns[0].Amount != 100.00 || txns[0].Date != "03/07/2025" {
		t.Errorf("unexpected transaction: %+v", txns[0])
	}
}

func TestTransactionCarriesLineAndBank(t *testing.T) {
	asm, _ := newAssembler(t)

	page := "03/07/2025\nPIX RECEBIDO JOAO R$ 100,00"
	txns := asm.ProcessPage(page, "ocr:page-7")
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if txns[0].Line != 2 {
		t.Errorf("line = %d, want 2", txns[0].Line)
	}
	if txns[0].Source != "ocr:page-7" {
		t.Errorf("source = %q", txns[0].Source)
	}
	if txns[0].Bank == "" {
		t.Error("bank name should be set")
	}
}
