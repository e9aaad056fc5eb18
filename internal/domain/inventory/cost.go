package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mayondo-api/internal/domain/entity"
)

// ResolveUnitCost devuelve el promedio simple (no ponderado por cantidad) del costo unitario
// de las entradas que coinciden con la identidad. ok=false cuando no hay coincidencias: el
// llamador debe tratarlo como costo cero.
func ResolveUnitCost(entries []entity.StockEntry, product entity.ProductIdentity) (decimal.Decimal, bool) {
	sum := decimal.Zero
	n := int64(0)
	for i := range entries {
		if !entity.Matches(entries[i].Product, product) {
			continue
		}
		sum = sum.Add(entries[i].UnitCost)
		n++
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return sum.Div(decimal.NewFromInt(n)), true
}

// CostSource resuelve el costo unitario de una identidad.
type CostSource interface {
	ResolveUnitCost(product entity.ProductIdentity) (decimal.Decimal, bool)
}

type resolvedCost struct {
	cost decimal.Decimal
	ok   bool
}

// CostTable memoiza ResolveUnitCost sobre una instantánea del libro de stock.
// No es segura para uso concurrente; se crea una por agregación.
type CostTable struct {
	entries []entity.StockEntry
	cache   map[entity.ProductIdentity]resolvedCost
}

// NewCostTable construye la tabla sobre la instantánea dada.
func NewCostTable(entries []entity.StockEntry) *CostTable {
	return &CostTable{
		entries: entries,
		cache:   make(map[entity.ProductIdentity]resolvedCost),
	}
}

// ResolveUnitCost implementa CostSource.
func (t *CostTable) ResolveUnitCost(product entity.ProductIdentity) (decimal.Decimal, bool) {
	if r, ok := t.cache[product]; ok {
		return r.cost, r.ok
	}
	cost, ok := ResolveUnitCost(t.entries, product)
	t.cache[product] = resolvedCost{cost: cost, ok: ok}
	return cost, ok
}
