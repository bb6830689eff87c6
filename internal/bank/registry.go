package bank

import (
	"fmt"
	"strings"

	"github.com/finlens/extrato-parser/internal/models"
)

// Info is the descriptor a registry entry exposes to callers (bank selectors,
// CLI listings).
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// UnsupportedBankError is returned when a strategy id is not registered. It
// carries the valid ids so callers can surface them.
type UnsupportedBankError struct {
	ID        string
	Available []string
}

func (e *UnsupportedBankError) Error() string {
	return fmt.Sprintf("unsupported bank %q; available banks: %s",
		e.ID, strings.Join(e.Available, ", "))
}

// Registry holds every available strategy. It is populated once at
// construction and never mutated afterwards.
type Registry struct {
	order      []string
	strategies map[string]Strategy
}

// NewRegistry builds the registry with every supported strategy. fallback is
// the transaction type assigned to lines no strategy can classify.
func NewRegistry(fallback models.TransactionType) *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	for _, s := range []Strategy{
		NewGeneric(fallback),
		NewSantander(fallback),
		NewItau(fallback),
	} {
		r.order = append(r.order, s.ID())
		r.strategies[s.ID()] = s
	}
	return r
}

// Get resolves a strategy by id.
func (r *Registry) Get(id string) (Strategy, error) {
	s, ok := r.strategies[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, &UnsupportedBankError{ID: id, Available: append([]string(nil), r.order...)}
	}
	return s, nil
}

// List enumerates the registered strategies in registration order.
func (r *Registry) List() []Info {
	infos := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		s := r.strategies[id]
		infos = append(infos, Info{
			ID:          s.ID(),
			Name:        s.Name(),
			Code:        s.Code(),
			Description: s.Description(),
		})
	}
	return infos
}

// IDs returns the registered strategy ids in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}
