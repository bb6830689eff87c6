package analyzer

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finlens/extrato-parser/internal/models"
)

// Statistics aggregates a statement's transactions. Sums use decimal
// arithmetic so centavo totals do not drift the way float accumulation does.
type Statistics struct {
	Count       int             `json:"count"`
	CreditCount int             `json:"creditCount"`
	DebitCount  int             `json:"debitCount"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	Net         decimal.Decimal `json:"net"`

	LargestCredit decimal.Decimal `json:"largestCredit"`
	LargestDebit  decimal.Decimal `json:"largestDebit"`

	FirstDate string `json:"firstDate,omitempty"`
	LastDate  string `json:"lastDate,omitempty"`
}

// DailySummary totals one calendar day.
type DailySummary struct {
	Date        string          `json:"date"`
	Count       int             `json:"count"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	Net         decimal.Decimal `json:"net"`
}

// Stats computes whole-statement totals. Transactions are expected in
// chronological order, as the pipeline emits them.
func Stats(txns []models.Transaction) Statistics {
	stats := Statistics{
		TotalCredit:   decimal.Zero,
		TotalDebit:    decimal.Zero,
		Net:           decimal.Zero,
		LargestCredit: decimal.Zero,
		LargestDebit:  decimal.Zero,
	}
	for _, t := range txns {
		amount := decimal.NewFromFloat(t.Amount).Round(2)
		stats.Count++
		if t.Type == models.Credit {
			stats.CreditCount++
			stats.TotalCredit = stats.TotalCredit.Add(amount)
			if amount.GreaterThan(stats.LargestCredit) {
				stats.LargestCredit = amount
			}
		} else {
			stats.DebitCount++
			stats.TotalDebit = stats.TotalDebit.Add(amount)
			if amount.GreaterThan(stats.LargestDebit) {
				stats.LargestDebit = amount
			}
		}
	}
	stats.Net = stats.TotalCredit.Sub(stats.TotalDebit)
	if len(txns) > 0 {
		stats.FirstDate = txns[0].Date
		stats.LastDate = txns[len(txns)-1].Date
	}
	return stats
}

// Summarize groups transactions by day, ordered chronologically.
func Summarize(txns []models.Transaction) []DailySummary {
	byDate := make(map[string]*DailySummary)
	var order []string
	for _, t := range txns {
		day, ok := byDate[t.Date]
		if !ok {
			day = &DailySummary{
				Date:        t.Date,
				TotalCredit: decimal.Zero,
				TotalDebit:  decimal.Zero,
			}
			byDate[t.Date] = day
			order = append(order, t.Date)
		}
		day.Count++
		amount := decimal.NewFromFloat(t.Amount).Round(2)
		if t.Type == models.Credit {
			day.TotalCredit = day.TotalCredit.Add(amount)
		} else {
			day.TotalDebit = day.TotalDebit.Add(amount)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		ti, erri := (models.Transaction{Date: order[i]}).Time()
		tj, errj := (models.Transaction{Date: order[j]}).Time()
		if erri != nil || errj != nil {
			return order[i] < order[j]
		}
		return ti.Before(tj)
	})

	summaries := make([]DailySummary, 0, len(order))
	for _, date := range order {
		day := byDate[date]
		day.Net = day.TotalCredit.Sub(day.TotalDebit)
		summaries = append(summaries, *day)
	}
	return summaries
}
