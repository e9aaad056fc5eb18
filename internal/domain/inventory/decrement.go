package inventory

import (
	"sort"

	"github.com/jhoicas/mayondo-api/internal/domain/entity"
)

// Decrement nueva existencia de una entrada tras descontar una venta.
type Decrement struct {
	EntryID     string
	Taken       int
	NewQuantity int
}

// PlanDecrement reparte la cantidad vendida entre las entradas coincidentes, de la más antigua
// a la más reciente, sin dejar ninguna por debajo de cero. ok=false si las existencias no
// alcanzan; en ese caso no se devuelve plan.
func PlanDecrement(entries []entity.StockEntry, product entity.ProductIdentity, quantity int) ([]Decrement, bool) {
	if quantity < 1 {
		return nil, false
	}
	matching := make([]entity.StockEntry, 0, len(entries))
	for i := range entries {
		if entity.Matches(entries[i].Product, product) && entries[i].Quantity > 0 {
			matching = append(matching, entries[i])
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		if !matching[i].Date.Equal(matching[j].Date) {
			return matching[i].Date.Before(matching[j].Date)
		}
		return matching[i].Code < matching[j].Code
	})

	remaining := quantity
	plan := make([]Decrement, 0, len(matching))
	for _, e := range matching {
		if remaining == 0 {
			break
		}
		take := e.Quantity
		if take > remaining {
			take = remaining
		}
		remaining -= take
		plan = append(plan, Decrement{EntryID: e.ID, Taken: take, NewQuantity: e.Quantity - take})
	}
	if remaining > 0 {
		return nil, false
	}
	return plan, true
}
