package config

import (
	"os"
	"testing"

	"github.com/finlens/extrato-parser/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a temp dir so a developer's config.yaml is not picked up.
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.TTL.Hours() != 24 {
		t.Errorf("cache.ttl = %v, want 24h", cfg.Cache.TTL)
	}
	if cfg.Pipeline.MinPageTransactions != 3 {
		t.Errorf("pipeline.min_page_transactions = %d, want 3", cfg.Pipeline.MinPageTransactions)
	}
	if cfg.OCR.Language != "por" {
		t.Errorf("ocr.language = %q, want por", cfg.OCR.Language)
	}
	if cfg.FallbackType() != models.Credit {
		t.Errorf("fallback type = %q, want %q", cfg.FallbackType(), models.Credit)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server.addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("EXTRATO_CLASSIFY_FALLBACK_TYPE", "DEBIT")
	t.Setenv("EXTRATO_OCR_DPI", "200")
	t.Setenv("EXTRATO_SERVER_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FallbackType() != models.Debit {
		t.Errorf("fallback type = %q, want %q", cfg.FallbackType(), models.Debit)
	}
	if cfg.OCR.DPI != 200 {
		t.Errorf("ocr.dpi = %d, want 200", cfg.OCR.DPI)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server.addr = %q, want :9090", cfg.Server.Addr)
	}
}

func TestLoadRejectsBadFallbackType(t *testing.T) {
	chdirTemp(t)
	t.Setenv("EXTRATO_CLASSIFY_FALLBACK_TYPE", "MAYBE")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid fallback type")
	}
}

func TestLoadRejectsBadDPI(t *testing.T) {
	chdirTemp(t)
	t.Setenv("EXTRATO_OCR_DPI", "10")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for dpi below 72")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	yaml := `
cache:
  ttl: 1h
pipeline:
  min_page_transactions: 5
`
	if err := os.WriteFile(dir+"/config.yaml", []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.TTL.Hours() != 1 {
		t.Errorf("cache.ttl = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.Pipeline.MinPageTransactions != 5 {
		t.Errorf("pipeline.min_page_transactions = %d, want 5", cfg.Pipeline.MinPageTransactions)
	}
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}
