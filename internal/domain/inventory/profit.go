package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mayondo-api/internal/domain/entity"
)

// OrphanPolicy define qué hacer con ventas cuya identidad no tiene entradas de stock.
type OrphanPolicy string

const (
	// OrphanZeroCost la venta aporta su ingreso completo y costo cero (comportamiento histórico).
	OrphanZeroCost OrphanPolicy = "zero_cost"
	// OrphanReject la venta se excluye de la agregación y se rechaza al registrarla.
	OrphanReject OrphanPolicy = "reject"
)

// ParseOrphanPolicy valida el valor de configuración. Vacío equivale a OrphanZeroCost.
func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch OrphanPolicy(s) {
	case "", OrphanZeroCost:
		return OrphanZeroCost, nil
	case OrphanReject:
		return OrphanReject, nil
	}
	return "", fmt.Errorf("política de ventas huérfanas desconocida: %q", s)
}

// ProfitSummary totales de la agregación. Profit puede ser negativo (pérdida).
type ProfitSummary struct {
	Revenue     decimal.Decimal
	Cost        decimal.Decimal
	Profit      decimal.Decimal
	SalesCount  int // ventas que aportaron a los totales
	SkippedCost int // ventas con costo cero por identidad inválida o sin stock
	Excluded    int // ventas descartadas por OrphanReject
}

// Add suma dos resúmenes (la agregación es lineal sobre libros disjuntos).
func (s ProfitSummary) Add(o ProfitSummary) ProfitSummary {
	return ProfitSummary{
		Revenue:     s.Revenue.Add(o.Revenue),
		Cost:        s.Cost.Add(o.Cost),
		Profit:      s.Profit.Add(o.Profit),
		SalesCount:  s.SalesCount + o.SalesCount,
		SkippedCost: s.SkippedCost + o.SkippedCost,
		Excluded:    s.Excluded + o.Excluded,
	}
}

// ComputeProfit recorre las ventas y acumula ingreso (con recargo de transporte) y costo
// (cantidad * costo unitario resuelto). Un registro defectuoso nunca aborta la agregación:
// aporta su ingreso con costo cero.
func ComputeProfit(sales []entity.SaleEntry, costs CostSource, policy OrphanPolicy) ProfitSummary {
	revenue := decimal.Zero
	cost := decimal.Zero
	out := ProfitSummary{}

	for i := range sales {
		s := &sales[i]
		amount := PriceSale(s.Quantity, s.UnitPrice, s.TransportRequired)

		if !s.Product.IsValid() {
			revenue = revenue.Add(amount.Total)
			out.SalesCount++
			out.SkippedCost++
			continue
		}

		unitCost, ok := costs.ResolveUnitCost(s.Product)
		if !ok {
			if policy == OrphanReject {
				out.Excluded++
				continue
			}
			revenue = revenue.Add(amount.Total)
			out.SalesCount++
			out.SkippedCost++
			continue
		}

		revenue = revenue.Add(amount.Total)
		cost = cost.Add(decimal.NewFromInt(int64(s.Quantity)).Mul(unitCost))
		out.SalesCount++
	}

	out.Revenue = revenue
	out.Cost = cost
	out.Profit = revenue.Sub(cost)
	return out
}
