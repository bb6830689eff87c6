package extractor

import (
	"strings"
	"unicode"
)

// readableAccented covers the accented letters Brazilian statements use, so
// Portuguese text isn't penalized by the ASCII quality check.
const readableAccented = "áàâãéêíóôõúüçÁÀÂÃÉÊÍÓÔÕÚÜÇ"

// textQuality returns the ratio of readable characters (ASCII letters,
// digits, common punctuation, Portuguese accented letters, whitespace) to
// total characters, 0.0-1.0. Identity-encoded fonts produce text that fails
// this check while still being valid Unicode.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(`.,-/:;()'"R$%&@#!?+=*`, r) ||
				strings.ContainsRune(readableAccented, r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords appear in virtually every Brazilian bank statement. Extracted
// text containing none of them is likely garbage.
var commonWords = []string{
	"banco", "conta", "saldo", "extrato", "data", "valor",
	"agência", "agencia", "lançamento", "lancamento",
	"crédito", "credito", "débito", "debito",
	"pix", "ted", "doc", "transferência", "transferencia",
	"pagamento", "período", "periodo", "total",
	"movimentação", "movimentacao", "página", "pagina",
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// IsReadableText checks that pages hold enough text, that the text is
// readable rather than binary garbage, and that it contains at least one
// word a statement would have.
func IsReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
