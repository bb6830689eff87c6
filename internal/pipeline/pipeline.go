package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/finlens/extrato-parser/internal/assemble"
	"github.com/finlens/extrato-parser/internal/bank"
	"github.com/finlens/extrato-parser/internal/extractor"
	"github.com/finlens/extrato-parser/internal/models"
)

const (
	// defaultMinPageTransactions is the threshold below which a page is
	// re-parsed with block heuristics.
	defaultMinPageTransactions = 3
	// defaultSamplePages bounds how many pages feed year detection.
	defaultSamplePages = 3
	// yearSampleChars bounds how much of each sampled page is scanned.
	yearSampleChars = 2000
	// earliestStatementYear floors detection: statements older than this
	// are assumed to be misdetected and fall back to the current year.
	earliestStatementYear = 2024
)

// Result bundles the consolidated transactions with the processing report.
type Result struct {
	Transactions []models.Transaction `json:"transactions"`
	Report       models.Report        `json:"report"`
}

// Pipeline drives extraction: it tries each text layer in order, assembles
// transactions per page with the selected bank strategy, and consolidates
// the result. A layer wins as soon as it yields any transaction.
type Pipeline struct {
	registry *bank.Registry
	layers   []extractor.Layer
	log      *slog.Logger

	minPageTransactions int
	samplePages         int

	// Progress, when set, is called once per processed page.
	Progress func(page, total int)
}

// Option tweaks pipeline behavior.
type Option func(*Pipeline)

// WithMinPageTransactions sets the per-page threshold that triggers the
// block-parsing fallback.
func WithMinPageTransactions(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.minPageTransactions = n
		}
	}
}

// WithSamplePages sets how many pages are sampled for year detection.
func WithSamplePages(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.samplePages = n
		}
	}
}

func New(registry *bank.Registry, layers []extractor.Layer, log *slog.Logger, opts ...Option) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	p := &Pipeline{
		registry:            registry,
		layers:              layers,
		log:                 log,
		minPageTransactions: defaultMinPageTransactions,
		samplePages:         defaultSamplePages,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process extracts transactions from raw PDF bytes using the strategy
// registered under bankID. An unknown bankID fails before any extraction
// work. A document from which no layer can extract transactions is not an
// error: the result carries guidance instead.
func (p *Pipeline) Process(ctx context.Context, data []byte, bankID string) (*Result, error) {
	strategy, err := p.registry.Get(bankID)
	if err != nil {
		return nil, err
	}

	path, cleanup, err := writeTemp(data)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result := &Result{
		Transactions: []models.Transaction{},
		Report:       models.Report{StrategyUsed: strategy.ID()},
	}

	for _, layer := range p.layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !layer.Available() {
			p.log.Warn("extraction layer unavailable", "layer", layer.Name())
			result.Report.SkippedLayers = append(result.Report.SkippedLayers, layer.Name())
			result.Report.Guidance = append(result.Report.Guidance,
				fmt.Sprintf("layer %q is not available on this host", layer.Name()))
			continue
		}

		start := time.Now()
		pages, err := layer.ExtractPages(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.log.Info("extraction layer failed, trying next",
				"layer", layer.Name(), "error", err)
			result.Report.SkippedLayers = append(result.Report.SkippedLayers, layer.Name())
			continue
		}
		p.log.Debug("layer extracted pages",
			"layer", layer.Name(), "pages", len(pages), "elapsed", time.Since(start))

		txns, processed, dropped, err := p.assemble(ctx, strategy, pages, layer.Name())
		if err != nil {
			return nil, err
		}
		if len(txns) > 0 {
			result.Transactions = txns
			result.Report.LayerUsed = layer.Name()
			result.Report.PagesProcessed = processed
			result.Report.TransactionsFound = len(txns)
			result.Report.DroppedInvalidDates = dropped
			return result, nil
		}

		p.log.Info("layer yielded no transactions, trying next", "layer", layer.Name())
		result.Report.SkippedLayers = append(result.Report.SkippedLayers, layer.Name())
		result.Report.PagesProcessed = processed
	}

	result.Report.Guidance = append(result.Report.Guidance,
		"no transactions could be extracted from this document",
		"if the statement is scanned, rescan at a higher resolution",
		"check that the selected bank matches the statement's issuer")
	return result, nil
}

// assemble runs the page loop for one layer's output and consolidates.
func (p *Pipeline) assemble(ctx context.Context, strategy bank.Strategy, pages []string, source string) ([]models.Transaction, int, int, error) {
	doc := &models.DocumentContext{
		DetectedYear: p.detectYear(strategy, pages),
	}
	asm := assemble.New(strategy, doc)

	var candidates []models.Transaction
	processed := 0
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, 0, 0, err
		}
		if p.Progress != nil {
			p.Progress(i+1, len(pages))
		}

		pageSource := fmt.Sprintf("%s:page-%d", source, i+1)
		txns := asm.ProcessPage(page, pageSource)
		if len(txns) < p.minPageTransactions {
			// Sparse pages often mean the layout defeated the line parser;
			// block heuristics sometimes recover more.
			blockTxns := asm.ProcessPageBlocks(page, pageSource)
			if len(blockTxns) > len(txns) {
				p.log.Debug("block fallback recovered more transactions",
					"page", i+1, "line", len(txns), "block", len(blockTxns))
				txns = blockTxns
			}
		}
		candidates = append(candidates, txns...)
		processed++
	}

	txns, dropped := assemble.Consolidate(candidates)
	if dropped > 0 {
		p.log.Warn("dropped transactions with invalid dates", "count", dropped)
	}
	return txns, processed, dropped, nil
}

// detectYear samples the leading pages and asks the strategy for the
// statement year. Implausibly old detections fall back to the current year.
func (p *Pipeline) detectYear(strategy bank.Strategy, pages []string) int {
	year := strategy.DetectStatementYear(p.sampleText(pages))
	if year < earliestStatementYear {
		p.log.Debug("detected year below floor, using current year", "detected", year)
		return time.Now().Year()
	}
	return year
}

// sampleText joins the leading pages, each truncated to yearSampleChars.
// The cut backs off to a rune boundary so accented header words straddling
// it are never left as mangled bytes.
func (p *Pipeline) sampleText(pages []string) string {
	var sample strings.Builder
	for i, page := range pages {
		if i >= p.samplePages {
			break
		}
		if len(page) > yearSampleChars {
			cut := yearSampleChars
			for cut > 0 && !utf8.RuneStart(page[cut]) {
				cut--
			}
			page = page[:cut]
		}
		sample.WriteString(page)
		sample.WriteString("\n")
	}
	return sample.String()
}

func writeTemp(data []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "extrato-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), func() { os.Remove(f.Name()) }, nil
}
