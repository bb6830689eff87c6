package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/finlens/extrato-parser/internal/bank"
	"github.com/finlens/extrato-parser/internal/extractor"
	"github.com/finlens/extrato-parser/internal/models"
)

// fakeLayer returns canned pages instead of touching a real PDF.
type fakeLayer struct {
	name      string
	available bool
	pages     []string
	err       error
	calls     int
}

func (f *fakeLayer) Name() string    { return f.name }
func (f *fakeLayer) Available() bool { return f.available }
func (f *fakeLayer) ExtractPages(ctx context.Context, path string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const statementPage = `Banco Exemplo S.A. - Extrato de julho de 2025
03/07/2025 PIX RECEBIDO JOAO SILVA R$ 1.234,56
03/07/2025 PAGAMENTO BOLETO ENERGIA R$ 189,90
04/07/2025 TED RECEBIDA EMPRESA LTDA R$ 5.000,00
05/07/2025 COMPRA CARTAO SUPERMERCADO R$ 230,45`

func newTestPipeline(layers ...extractor.Layer) *Pipeline {
	registry := bank.NewRegistry(models.Credit)
	return New(registry, layers, discardLogger())
}

func TestProcessUnknownBank(t *testing.T) {
	p := newTestPipeline(&fakeLayer{name: "text", available: true})

	_, err := p.Process(context.Background(), []byte("%PDF"), "nubankxyz")
	if err == nil {
		t.Fatal("expected error for unknown bank id")
	}
	var unsupported *bank.UnsupportedBankError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedBankError, got %T: %v", err, err)
	}
	for _, id := range []string{"generic", "santander", "itau"} {
		if !contains(unsupported.Available, id) {
			t.Errorf("error should list %q among available banks, got %v", id, unsupported.Available)
		}
	}
}

func TestProcessFirstLayerWins(t *testing.T) {
	first := &fakeLayer{name: "text", available: true, pages: []string{statementPage}}
	second := &fakeLayer{name: "advanced", available: true, pages: []string{statementPage}}
	p := newTestPipeline(first, second)

	result, err := p.Process(context.Background(), []byte("%PDF"), "generic")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Report.LayerUsed != "text" {
		t.Errorf("LayerUsed = %q, want %q", result.Report.LayerUsed, "text")
	}
	if second.calls != 0 {
		t.Errorf("second layer called %d times, want 0", second.calls)
	}
	if len(result.Transactions) == 0 {
		t.Fatal("expected transactions from statement page")
	}
	if result.Report.TransactionsFound != len(result.Transactions) {
		t.Errorf("TransactionsFound = %d, want %d",
			result.Report.TransactionsFound, len(result.Transactions))
	}
}

func TestProcessFallsThroughFailingLayers(t *testing.T) {
	unavailable := &fakeLayer{name: "text", available: false}
	failing := &fakeLayer{name: "advanced", available: true, err: fmt.Errorf("renderer crashed")}
	working := &fakeLayer{name: "ocr", available: true, pages: []string{statementPage}}
	p := newTestPipeline(unavailable, failing, working)

	result, err := p.Process(context.Background(), []byte("%PDF"), "generic")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Report.LayerUsed != "ocr" {
		t.Errorf("LayerUsed = %q, want %q", result.Report.LayerUsed, "ocr")
	}
	if !contains(result.Report.SkippedLayers, "text") || !contains(result.Report.SkippedLayers, "advanced") {
		t.Errorf("SkippedLayers = %v, want text and advanced", result.Report.SkippedLayers)
	}
	if len(result.Report.Guidance) == 0 {
		t.Error("expected guidance about the unavailable layer")
	}
}

func TestProcessNoLayersYieldGuidanceNotError(t *testing.T) {
	empty := &fakeLayer{name: "text", available: true, pages: []string{"saldo total do banco sem lançamentos"}}
	p := newTestPipeline(empty)

	result, err := p.Process(context.Background(), []byte("%PDF"), "generic")
	if err != nil {
		t.Fatalf("empty document should not be an error, got %v", err)
	}
	if len(result.Transactions) != 0 {
		t.Errorf("expected no transactions, got %d", len(result.Transactions))
	}
	if len(result.Report.Guidance) == 0 {
		t.Error("expected guidance for extraction gap")
	}
}

func TestProcessHonorsCancellation(t *testing.T) {
	layer := &fakeLayer{name: "text", available: true, pages: []string{statementPage}}
	p := newTestPipeline(layer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, []byte("%PDF"), "generic")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestProcessReportsProgress(t *testing.T) {
	layer := &fakeLayer{name: "text", available: true, pages: []string{statementPage, statementPage}}
	p := newTestPipeline(layer)

	var seen []int
	p.Progress = func(page, total int) {
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
		seen = append(seen, page)
	}

	if _, err := p.Process(context.Background(), []byte("%PDF"), "generic"); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("progress pages = %v, want [1 2]", seen)
	}
}

func TestDetectYearFloor(t *testing.T) {
	p := newTestPipeline()
	registry := bank.NewRegistry(models.Credit)
	strategy, err := registry.Get("generic")
	if err != nil {
		t.Fatal(err)
	}

	// A statement full of pre-floor dates must not pin the year to the past.
	year := p.detectYear(strategy, []string{"extrato de 2019\n01/02/2019 pagamento 10,00"})
	if year < earliestStatementYear {
		t.Errorf("detectYear = %d, want >= %d", year, earliestStatementYear)
	}

	year = p.detectYear(strategy, []string{"extrato de julho de 2025\n03/07/2025 pix recebido"})
	if year != 2025 {
		t.Errorf("detectYear = %d, want 2025", year)
	}
}

func TestSampleTextCutsOnRuneBoundary(t *testing.T) {
	p := newTestPipeline()

	// 13-byte prefix puts the truncation point in the middle of one of the
	// two-byte runes that follow.
	page := "extrato 2025\n" + strings.Repeat("ç", yearSampleChars)
	if utf8.RuneStart(page[yearSampleChars]) {
		t.Fatal("fixture must place the cut inside a rune")
	}

	sample := p.sampleText([]string{page})
	if !utf8.ValidString(sample) {
		t.Error("sample contains mangled bytes after truncation")
	}
	if !strings.Contains(sample, "extrato 2025") {
		t.Error("sample lost text before the cut")
	}

	registry := bank.NewRegistry(models.Credit)
	strategy, err := registry.Get("generic")
	if err != nil {
		t.Fatal(err)
	}
	if year := p.detectYear(strategy, []string{page}); year != 2025 {
		t.Errorf("detectYear = %d, want 2025", year)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
