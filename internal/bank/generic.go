package bank

import "github.com/finlens/extrato-parser/internal/models"

// NewGeneric returns the default strategy: a minimal common heuristic for
// Brazilian statements from institutions without a dedicated strategy.
// Precision is lower than the institution-specific strategies, so it carries
// a transaction-indicator vocabulary to reject numeric noise.
func NewGeneric(fallback models.TransactionType) Strategy {
	return &strategy{
		id:          "generic",
		name:        "Genérico",
		code:        "000",
		description: "Heurística genérica para extratos bancários brasileiros",

		datePatterns: compileAll(
			// Anchored forms first, most specific to least.
			`^(\d{2})/(\d{2})/(\d{4})`,
			`^(\d{2})/(\d{2})/(\d{2})\b`,
			`^(\d{1,2})/(\d{1,2})/(\d{4})`,
			`^(\d{2})/(\d{2})\s`,
			`^(\d{1,2})/(\d{1,2})\s`,
			// Labeled forms.
			`(?i)data[:\s]+(\d{2})/(\d{2})/(\d{4})`,
			`(?i)em[:\s]+(\d{2})/(\d{2})/(\d{4})`,
			// Unanchored generic forms, lowest priority.
			`(\d{2})/(\d{2})/(\d{4})`,
			`(\d{2})/(\d{2})/(\d{2})\b`,
			`(\d{1,2})/(\d{1,2})/(\d{4})`,
			`(\d{2})/(\d{2})\b`,
			`(\d{1,2})/(\d{1,2})\b`,
		),

		valuePatterns: defaultValuePatterns,

		ignorePatterns: compileAll(
			`p[áa]gina?\s*[:.]?\s*\d+`,
			`\bpagina?\s*[:.]?\s*\d+/\d+`,
			`^\d+$`,
			`^\d+/\d+$`,
			`^\d+\s*$`,
			`banco\s+`,
			`extrato\s+`,
			`conta\s+corrente`,
			`saldo\s+(anterior|atual)`,
			`total\s+`,
			`^\s*[-=]+\s*$`,
			`agencia\s*\d+`,
			`conta\s*\d+`,
			`cpf\s*[:.]?\s*\d`,
			`cnpj\s*[:.]?\s*\d`,
			`desconsidere\s+esta\s+informa[çc][ãa]o`,
			`v[áa]lido\s+para\s+clientes`,
			`se\s+o\s+limite\s+de\s+cr[ée]dito`,
			`tarifa\s+pela\s+disponibiliza[çc][ãa]o`,
			`hip[óo]teses?\s*:`,
			`durante\s+do\s+prazo`,
			`per[íi]odo\s+de\s+vig[êe]ncia`,
			`emitente`,
			`ccgpj\s+\d+`,
			`v\s+\d+,\d+\s+\d+`,
			`\d{12,}`,
		),

		creditKeywords: []string{
			"crédito", "credito", "entrada", "depósito", "deposito",
			"transferência recebida", "transferencia recebida",
			"pix recebido", "ted recebida", "doc recebido",
			"salário", "salario", "rendimento",
			"recebido", "recebimento",
		},
		debitKeywords: []string{
			"débito", "debito", "saída", "saida", "saque", "pagamento",
			"transferência enviada", "transferencia enviada",
			"pix enviado", "ted enviada", "doc enviado",
			"compra", "taxa", "tarifa", "pago",
		},

		indicators: []string{
			"pix", "ted", "doc", "transferencia", "transferência",
			"saque", "deposito", "depósito", "pagamento", "recebimento",
			"debito", "débito", "credito", "crédito", "tarifa", "taxa",
			"compra", "fornec", "checkout", "talao", "talão", "ccgpj",
			"giro", "cdc", "fgi", "peac", "limite", "certificação",
			"enviado", "recebido", "cartao", "cartão", "conta",
			"banco", "agencia", "agência", "compensacao", "compensação",
			"cheque", "boleto", "fatura", "parcela", "juros",
			"multa", "desconto", "cashback", "estorno", "devolucao",
			"devolução", "ordem", "servico", "serviço",
		},

		cleanupPatterns: compileAll(
			`^\d{2}/\d{2}/\d{4}\s*`,
			`^\d{2}/\d{2}/\d{2}\s*`,
			`^\d{2}/\d{2}\s*`,
			`R\$\s*\d+[.,]\d{2}\s*`,
			`\d+[.,]\d{2}\s*$`,
		),

		fallbackType: fallback,
	}
}
