package assemble

import (
	"sort"
	"time"

	"github.com/finlens/extrato-parser/internal/models"
)

// Consolidate finalizes the candidates from all pages of one document: it
// drops records whose date fails calendar validation (returning the drop
// count), removes duplicates by exact (date, type, amount) key keeping the
// first occurrence, and stable-sorts ascending by date so same-date entries
// keep their relative order. The result is deterministic for a given input.
func Consolidate(candidates []models.Transaction) ([]models.Transaction, int) {
	if len(candidates) == 0 {
		return nil, 0
	}

	type key struct {
		date   string
		typ    models.TransactionType
		amount float64
	}

	type dated struct {
		txn models.Transaction
		at  time.Time
	}

	seen := make(map[key]struct{}, len(candidates))
	unique := make([]dated, 0, len(candidates))
	dropped := 0

	for _, txn := range candidates {
		at, err := txn.Time()
		if err != nil {
			dropped++
			continue
		}
		k := key{date: txn.Date, typ: txn.Type, amount: txn.Amount}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, dated{txn: txn, at: at})
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].at.Before(unique[j].at)
	})

	out := make([]models.Transaction, len(unique))
	for i, d := range unique {
		out[i] = d.txn
	}
	return out, dropped
}
