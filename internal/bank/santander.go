package bank

import "github.com/finlens/extrato-parser/internal/models"

// NewSantander returns the strategy for Banco Santander (Brasil) statements:
// the generic heuristics plus pattern sets and vocabulary tuned to the
// Santander statement layout and its boilerplate.
func NewSantander(fallback models.TransactionType) Strategy {
	return &strategy{
		id:          "santander",
		name:        "Santander",
		code:        "033",
		description: "Banco Santander (Brasil) S.A.",

		datePatterns: compileAll(
			`^(\d{2})/(\d{2})/(\d{4})`,
			`^(\d{2})/(\d{2})/(\d{2})\b`,
			`^(\d{1,2})/(\d{1,2})/(\d{4})`,
			`^(\d{2})/(\d{2})\s`,
			`^(\d{1,2})/(\d{1,2})\s`,
			// Labels used by the Santander layout.
			`(?i)data[:\s]+(\d{2})/(\d{2})/(\d{4})`,
			`(?i)movto[:\s]+(\d{2})/(\d{2})/(\d{4})`,
			`(?i)lan[çc]amento[:\s]+(\d{2})/(\d{2})/(\d{4})`,
			`(\d{2})/(\d{2})/(\d{4})`,
			`(\d{2})/(\d{2})/(\d{2})\b`,
			`(\d{1,2})/(\d{1,2})/(\d{4})`,
			`(\d{2})/(\d{2})\b`,
			`(\d{1,2})/(\d{1,2})\b`,
		),

		dateDeny: compileAll(
			`santander\s+\d+`,
			`cartao\s+\d+`,
		),

		valuePatterns: append(compileAll(
			`(?i)valor[:\s]+R\$\s*(\d{1,3}(?:\.\d{3})*,\d{2})`,
			`(?i)valor[:\s]+(\d{1,3}(?:\.\d{3})*,\d{2})`,
			`(?i)saldo[:\s]+R\$\s*(\d{1,3}(?:\.\d{3})*,\d{2})`,
		), defaultValuePatterns...),

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
			// Santander boilerplate.
			`santander\s+brasil`,
			`banco\s+santander`,
			`conta\s+corrente\s+santander`,
			`poupan[çc]a\s+santander`,
			`agencia\s+santander`,
			`gerente\s+santander`,
			`cart[ãa]o\s+santander`,
			`mastercard\s+santander`,
			`visa\s+santander`,
			`santander\s+select`,
			`santander\s+empresarial`,
			`santander\s+van\s+gogh`,
			`way\s+santander`,
			`santander\s+pay`,
			`c[óo]digo\s+do\s+banco\s+033`,
			`033\s+santander`,
			`central\s+de\s+atendimento`,
			`sac\s+santander`,
			`ouvidoria\s+santander`,
			`desconsidere\s+esta\s+informa[çc][ãa]o`,
			`v[áa]lido\s+para\s+clientes`,
			`se\s+o\s+limite\s+de\s+cr[ée]dito`,
			`tarifa\s+pela\s+disponibiliza[çc][ãa]o`,
			`cheque\s+empresa\s+plus`,
			`santander\s+master`,
			`hip[óo]teses?\s*:`,
			`durante\s+do\s+prazo`,
			`per[íi]odo\s+de\s+vig[êe]ncia`,
			`emitente`,
			`ccgpj\s+\d+`,
			`v\s+\d+,\d+\s+\d+`,
			`\d{12,}`,
			// Headers and footers.
			`extrato\s+de\s+conta\s+corrente`,
			`extrato\s+de\s+poupan[çc]a`,
			`movimenta[çc][ãa]o\s+do\s+per[íi]odo`,
			`saldo\s+inicial`,
			`saldo\s+final`,
			`total\s+de\s+cr[ée]ditos`,
			`total\s+de\s+d[ée]bitos`,
			`n[úu]mero\s+da\s+conta`,
			`n[úu]mero\s+da\s+ag[êe]ncia`,
			`titular\s+da\s+conta`,
			`nome\s+do\s+cliente`,
		),

		creditKeywords: []string{
			"crédito", "credito", "entrada", "depósito", "deposito",
			"transferência recebida", "pix recebido", "ted recebida",
			"doc recebido", "salário", "salario", "rendimento",
			"credito automatico", "credito em conta", "liquidacao automatica",
			"remuneracao", "rendimento poupanca", "rendimento cdb",
			"credito salario", "credito beneficio", "deposito identificado",
			"transferencia doc credito", "transferencia ted credito",
			"pix transferencia recebida", "pix recebimento",
			"santander pay recebido", "way recebido",
			"estorno credito", "devolucao credito", "cancelamento debito",
			"cashback", "credito cartao", "credito pre aprovado",
			"emprestimo credito", "limite especial credito",
		},
		debitKeywords: []string{
			"débito", "debito", "saída", "saque", "pagamento",
			"transferência enviada", "pix enviado", "ted enviada",
			"doc enviado", "compra", "taxa", "tarifa",
			"debito automatico", "debito em conta", "saque terminal",
			"saque santander", "pagamento debito automatico",
			"transferencia doc debito", "transferencia ted debito",
			"pix transferencia enviada", "pix pagamento",
			"santander pay enviado", "way enviado",
			"tarifa santander", "tarifa conta corrente", "tarifa poupanca",
			"anuidade cartao", "tarifa sms", "tarifa extrato",
			"iof", "imposto renda", "compulsorio",
			"emprestimo debito", "financiamento debito",
			"cartao credito", "fatura cartao", "compra cartao",
			"saque avulso", "cheque compensado", "devolucao cheque",
			"tarifa ted", "tarifa doc", "tarifa pix",
			"limite especial debito", "juros limite especial",
		},

		creditCues: compileAll(
			`\+\s*\d`, `entrada\s+`, `receb\w*\s+`,
			`dep\w*\s+`, `liquid\w*\s+`, `rendim\w*\s+`,
			`credit\w*\s+`, `estorn\w*\s+credit`,
			`devol\w*\s+credit`, `cancel\w*\s+debit`,
		),
		debitCues: compileAll(
			`-\s*\d`, `saida\s+`, `pag\w*\s+`,
			`saque\s+`, `tarif\w*\s+`, `taxa\s+`,
			`debit\w*\s+`, `compra\s+`, `transfer\w*\s+env`,
			`pix\s+env`, `ted\s+env`, `doc\s+env`,
		),

		cleanupPatterns: compileAll(
			`^\d{2}/\d{2}/\d{4}\s*`,
			`^\d{2}/\d{2}/\d{2}\s*`,
			`^\d{2}/\d{2}\s*`,
			`R\$\s*\d+[.,]\d{2}\s*`,
			`\d+[.,]\d{2}\s*$`,
			`(?i)santander\s*`,
			`(?i)ag\s*\d+\s*`,
			`(?i)cc\s*\d+\s*`,
			`(?i)conta\s+\d+\s*`,
			`(?i)banco\s+033\s*`,
		),

		yearPatterns: compileAll(
			`extrato\s+santander.*?(\d{4})`,
			`conta\s+corrente.*?(\d{4})`,
			`movimenta[çc][ãa]o.*?\d{1,2}/\d{1,2}/(\d{4})`,
			`per[íi]odo.*?\d{1,2}/\d{1,2}/(\d{4})`,
			`saldo\s+em\s+\d{1,2}/\d{1,2}/(\d{4})`,
			`santander.*?(\d{4})`,
			`(\d{4})\s*-\s*santander`,
		),

		fallbackType: fallback,
	}
}
