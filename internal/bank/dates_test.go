package bank

import (
	"fmt"
	"testing"
	"time"

	"github.com/finlens/extrato-parser/internal/models"
)

func TestExtractDate(t *testing.T) {
	s := NewGeneric(models.Credit)

	tests := []struct {
		name         string
		line         string
		detectedYear int
		want         string
		ok           bool
	}{
		{
			name:         "anchored full date",
			line:         "03/07/2025 PIX RECEBIDO JOAO SILVA R$ 1.234,56",
			detectedYear: 2025,
			want:         "03/07/2025", ok: true,
		},
		{
			name:         "labeled date",
			line:         "Data: 15/03/2024 Pagamento de boleto",
			detectedYear: 2024,
			want:         "15/03/2024", ok: true,
		},
		{
			name: "two digit year expands to 2000s",
			line: "05/01/25 COMPRA CARTAO",
			want: "05/01/2025", ok: true,
		},
		{
			name:         "day month only inherits detected year",
			line:         "03/07 PIX RECEBIDO",
			detectedYear: 2025,
			want:         "03/07/2025", ok: true,
		},
		{
			name:         "wild year snaps to detected year",
			line:         "03/07/2035 PIX RECEBIDO",
			detectedYear: 2025,
			want:         "03/07/2025", ok: true,
		},
		{
			name: "impossible calendar date rejected",
			line: "31/02/2025 PAGAMENTO",
			ok:   false,
		},
		{
			name: "month out of range rejected",
			line: "10/13/2025 PAGAMENTO",
			ok:   false,
		},
		{
			name:         "pre-2020 date rejected",
			line:         "03/07/2019 PAGAMENTO ANTIGO",
			detectedYear: 2019,
			ok:           false,
		},
		{
			name: "pix reference number is not a date",
			line: "PIX 03072025112233",
			ok:   false,
		},
		{
			name: "protocol number blocks the whole line",
			line: "Protocolo 20250703 pagamento 03/07/2025",
			ok:   false,
		},
		{
			name: "account number with slash-free digits denied",
			line: "Conta 1234567 agencia 0001",
			ok:   false,
		},
		{
			name: "plain text has no date",
			line: "PAGAMENTO DE BOLETO BANCARIO",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.ExtractDate(tt.line, tt.detectedYear)
			if ok != tt.ok {
				t.Fatalf("ExtractDate(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ExtractDate(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

// Every resolved date must parse back under the canonical layout.
func TestExtractDateRoundTrip(t *testing.T) {
	s := NewGeneric(models.Credit)
	lines := []string{
		"03/07/2025 PIX RECEBIDO R$ 10,00",
		"1/7/2025 TED RECEBIDA",
		"28/02/2024 PAGAMENTO",
		"05/01/25 COMPRA",
	}

	for _, line := range lines {
		date, ok := s.ExtractDate(line, 2025)
		if !ok {
			t.Errorf("ExtractDate(%q) failed", line)
			continue
		}
		parsed, err := time.Parse(models.DateLayout, date)
		if err != nil {
			t.Errorf("resolved date %q does not parse: %v", date, err)
			continue
		}
		if rendered := parsed.Format(models.DateLayout); rendered != date {
			t.Errorf("round trip %q -> %q", date, rendered)
		}
	}
}

func TestExtractDateFutureWindow(t *testing.T) {
	s := NewGeneric(models.Credit)
	tooFar := time.Now().Year() + 3

	line := fmt.Sprintf("03/07/%d AGENDAMENTO", tooFar)
	if _, ok := s.ExtractDate(line, tooFar); ok {
		t.Errorf("date %d years ahead should be rejected", 3)
	}
}

func TestCompleteYear(t *testing.T) {
	tests := []struct {
		in           string
		detectedYear int
		want         string
	}{
		{"25", 0, "2025"},
		{"50", 0, "2050"},
		{"51", 0, "1951"},
		{"99", 0, "1999"},
		{"2025", 2025, "2025"},
		{"2024", 2025, "2024"}, // within one of the statement year
		{"2030", 2025, "2025"}, // OCR corruption snaps back
	}

	for _, tt := range tests {
		if got := completeYear(tt.in, tt.detectedYear); got != tt.want {
			t.Errorf("completeYear(%q, %d) = %q, want %q", tt.in, tt.detectedYear, got, tt.want)
		}
	}
}
