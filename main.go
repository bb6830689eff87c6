package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/finlens/extrato-parser/internal/api"
	"github.com/finlens/extrato-parser/internal/bank"
	"github.com/finlens/extrato-parser/internal/cache"
	"github.com/finlens/extrato-parser/internal/config"
	"github.com/finlens/extrato-parser/internal/extractor"
	"github.com/finlens/extrato-parser/internal/pipeline"
	"github.com/finlens/extrato-parser/internal/writer"
)

const version = "1.0.0"

func main() {
	bankFlag := flag.String("bank", "", "Bank id: generic, santander, itau")
	banksFlag := flag.Bool("banks", false, "List supported banks and exit")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with the format's extension)")
	formatFlag := flag.String("format", "csv", "Output format: csv or xlsx")
	noCacheFlag := flag.Bool("no-cache", false, "Bypass the result cache")
	serveFlag := flag.Bool("serve", false, "Start the HTTP API instead of converting files")
	addrFlag := flag.String("addr", "", "Listen address for -serve (overrides config)")
	verboseFlag := flag.Bool("verbose", false, "Enable debug logging")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Extrato Parser — Brazilian bank statement PDF converter

Extracts transactions from bank statement PDFs (Santander, Itaú, or any
generic BRL statement) into CSV or XLSX, falling back to layout-aware
rendering and OCR for scanned documents.

Usage:
  extrato-parser -bank=<id> [flags] <input.pdf> [input2.pdf ...]
  extrato-parser -serve [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a Santander statement
  extrato-parser -bank=santander extrato.pdf

  # Generic strategy with XLSX output
  extrato-parser -bank=generic -format=xlsx -output=lancamentos.xlsx extrato.pdf

  # Run the HTTP API
  extrato-parser -serve -addr=:8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("extrato-parser v%s\n", version)
		return
	}

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		fatalf("Configuration error: %v\n", err)
	}

	registry := bank.NewRegistry(cfg.FallbackType())

	if *banksFlag {
		for _, info := range registry.List() {
			fmt.Printf("%-12s %s", info.ID, info.Name)
			if info.Code != "" {
				fmt.Printf(" (COMPE %s)", info.Code)
			}
			fmt.Println()
		}
		return
	}

	layers := extractor.DefaultLayers(cfg.OCR.Language, cfg.OCR.DPI)
	pipe := pipeline.New(registry, layers, log,
		pipeline.WithMinPageTransactions(cfg.Pipeline.MinPageTransactions),
		pipeline.WithSamplePages(cfg.Pipeline.SamplePages),
	)

	var resultCache *cache.Cache
	if !*noCacheFlag {
		resultCache, err = cache.New(cfg.Cache.Dir, cfg.Cache.TTL)
		if err != nil {
			// A broken cache dir degrades to uncached operation.
			log.Warn("cache disabled", "error", err)
		}
	}

	if *serveFlag {
		addr := cfg.Server.Addr
		if *addrFlag != "" {
			addr = *addrFlag
		}
		runServer(pipe, registry, resultCache, cfg.Cache.SweepSchedule, addr, log)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *bankFlag == "" {
		fatalf("Flag -bank is required. Available: %s\n", strings.Join(registry.IDs(), ", "))
	}
	if *formatFlag != "csv" && *formatFlag != "xlsx" {
		fatalf("Unknown format %q. Use csv or xlsx.\n", *formatFlag)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for i, inputPath := range flag.Args() {
		// An explicit -output only applies to a single input.
		outPath := ""
		if i == 0 {
			outPath = *outputFlag
		}
		if err := processFile(ctx, pipe, resultCache, inputPath, *bankFlag, outPath, *formatFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func runServer(pipe *pipeline.Pipeline, registry *bank.Registry, resultCache *cache.Cache, sweepSchedule, addr string, log *slog.Logger) {
	if resultCache != nil {
		sweeper := cache.NewSweeper(resultCache, sweepSchedule, log)
		if err := sweeper.Start(); err != nil {
			fatalf("Failed to start cache sweeper: %v\n", err)
		}
		defer sweeper.Stop()
	}

	server := api.NewServer(pipe, registry, resultCache, log)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-done
		log.Info("shutting down")
		server.Shutdown()
	}()

	if err := server.Listen(addr); err != nil {
		fatalf("Server error: %v\n", err)
	}
}

func processFile(ctx context.Context, pipe *pipeline.Pipeline, resultCache *cache.Cache, inputPath, bankID, outputPath, format string) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	result, cached, err := convert(ctx, pipe, resultCache, data, bankID)
	if err != nil {
		return err
	}
	if cached {
		fmt.Println("  Using cached result")
	}

	fmt.Printf("  Found %d transaction(s)", result.Report.TransactionsFound)
	if result.Report.LayerUsed != "" {
		fmt.Printf(" via %s layer", result.Report.LayerUsed)
	}
	fmt.Println()
	if result.Report.DroppedInvalidDates > 0 {
		fmt.Printf("  Dropped %d entry(ies) with invalid dates\n", result.Report.DroppedInvalidDates)
	}

	if len(result.Transactions) == 0 {
		fmt.Println("  Warning: no transactions found.")
		for _, hint := range result.Report.Guidance {
			fmt.Printf("  Hint: %s\n", hint)
		}
		return nil
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "." + format
	}

	switch format {
	case "xlsx":
		w := &writer.XLSXWriter{}
		err = w.WriteToFile(outPath, result.Transactions, result.Report)
	default:
		w := &writer.CSVWriter{IncludeReport: true}
		err = w.WriteToFile(outPath, result.Transactions, result.Report)
	}
	if err != nil {
		return fmt.Errorf("output write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}

func convert(ctx context.Context, pipe *pipeline.Pipeline, resultCache *cache.Cache, data []byte, bankID string) (*pipeline.Result, bool, error) {
	hash := cache.Hash(data)
	if resultCache != nil {
		if entry, ok := resultCache.Load(hash); ok {
			return &pipeline.Result{Transactions: entry.Transactions, Report: entry.Report}, true, nil
		}
	}

	result, err := pipe.Process(ctx, data, bankID)
	if err != nil {
		return nil, false, err
	}

	if resultCache != nil && len(result.Transactions) > 0 {
		if err := resultCache.Save(hash, result.Transactions, result.Report); err != nil {
			slog.Warn("failed to cache result", "error", err)
		}
	}
	return result, false, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
