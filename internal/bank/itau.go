package bank

import "github.com/finlens/extrato-parser/internal/models"

// NewItau returns the strategy for Itaú Unibanco statements. Itaú extracts
// use a "dd/mm lançamento valor" layout with SISPAG/comprovante vocabulary.
func NewItau(fallback models.TransactionType) Strategy {
	return &strategy{
		id:          "itau",
		name:        "Itaú",
		code:        "341",
		description: "Itaú Unibanco S.A.",

		datePatterns: compileAll(
			`^(\d{2})/(\d{2})/(\d{4})`,
			`^(\d{2})/(\d{2})/(\d{2})\b`,
			`^(\d{1,2})/(\d{1,2})/(\d{4})`,
			`^(\d{2})/(\d{2})\s`,
			`^(\d{1,2})/(\d{1,2})\s`,
			`(?i)data[:\s]+(\d{2})/(\d{2})/(\d{4})`,
			`(?i)lan[çc]amentos?[:\s]+(\d{2})/(\d{2})/(\d{4})`,
			`(\d{2})/(\d{2})/(\d{4})`,
			`(\d{2})/(\d{2})/(\d{2})\b`,
			`(\d{2})/(\d{2})\b`,
		),

		dateDeny: compileAll(
			`itau\s+\d+`,
			`ita[úu]\s+\d+`,
			`sispag\s+\d+`,
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
			`saldo\s+(anterior|atual|do\s+dia|dispon[íi]vel)`,
			`total\s+`,
			`^\s*[-=]+\s*$`,
			`agencia\s*\d+`,
			`conta\s*\d+`,
			`cpf\s*[:.]?\s*\d`,
			`cnpj\s*[:.]?\s*\d`,
			// Itaú boilerplate.
			`ita[úu]\s+unibanco`,
			`banco\s+ita[úu]`,
			`c[óo]digo\s+do\s+banco\s+341`,
			`341\s+ita[úu]`,
			`ita[úu]\s+personnalit[ée]`,
			`ita[úu]\s+uniclass`,
			`ita[úu]\s+empresas`,
			`sac\s+ita[úu]`,
			`ouvidoria\s+ita[úu]`,
			`central\s+de\s+atendimento`,
			`aplicativo\s+ita[úu]`,
			`bankline`,
			`lan[çc]amentos?\s+do\s+per[íi]odo`,
			`movimenta[çc][ãa]o\s+do\s+per[íi]odo`,
			`saldo\s+inicial`,
			`saldo\s+final`,
			`\d{12,}`,
		),

		creditKeywords: []string{
			"crédito", "credito", "entrada", "depósito", "deposito",
			"transferência recebida", "pix recebido", "ted recebida",
			"doc recebido", "salário", "salario", "rendimento",
			"pix qr code recebido",
			"sispag credito", "resgate aplic", "rend pago aplic",
			"credito salario", "deposito caixa eletronico",
			"estorno credito", "devolucao pix",
			"cashback", "remuneracao",
		},
		debitKeywords: []string{
			"débito", "debito", "saída", "saque", "pagamento",
			"transferência enviada", "pix enviado", "ted enviada",
			"doc enviado", "compra", "taxa", "tarifa",
			"pix qr code enviado", "sispag debito", "sispag fornecedores",
			"aplicacao aplic", "pagamento boleto", "pagto boleto",
			"debito autorizado", "saque caixa eletronico",
			"anuidade", "iof", "juros", "mensalidade",
			"tarifa mensalidade pacote",
		},

		creditCues: compileAll(
			`\+\s*\d`, `entrada\s+`, `receb\w*\s+`,
			`dep\w*\s+`, `resgate\s+`, `rendim\w*\s+`,
			`credit\w*\s+`, `estorn\w*\s+`,
		),
		debitCues: compileAll(
			`-\s*\d`, `saida\s+`, `pag\w*\s+`,
			`saque\s+`, `tarif\w*\s+`, `taxa\s+`,
			`debit\w*\s+`, `compra\s+`, `aplica\w*\s+`,
			`pix\s+env`, `ted\s+env`, `doc\s+env`,
		),

		cleanupPatterns: compileAll(
			`^\d{2}/\d{2}/\d{4}\s*`,
			`^\d{2}/\d{2}/\d{2}\s*`,
			`^\d{2}/\d{2}\s*`,
			`R\$\s*\d+[.,]\d{2}\s*`,
			`\d+[.,]\d{2}\s*$`,
			`(?i)ita[úu]\s*`,
			`(?i)ag\s*\d+\s*`,
			`(?i)cc\s*\d+\s*`,
			`(?i)banco\s+341\s*`,
		),

		yearPatterns: compileAll(
			`extrato\s+ita[úu].*?(\d{4})`,
			`lan[çc]amentos?.*?\d{1,2}/\d{1,2}/(\d{4})`,
			`per[íi]odo.*?\d{1,2}/\d{1,2}/(\d{4})`,
			`ita[úu].*?(\d{4})`,
		),

		fallbackType: fallback,
	}
}
