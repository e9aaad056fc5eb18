// Package analytics contiene los casos de uso de reportes de negocio: utilidad agregada
// sobre el libro de ventas y el resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/inventory"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

// ProfitUseCase agrega ingreso, costo y utilidad. Lee el libro de stock una sola vez por
// cálculo y resuelve costos con una CostTable.
type ProfitUseCase struct {
	stock  StockLister
	sales  SaleLister
	policy inventory.OrphanPolicy
}

// NewProfitUseCase construye el caso de uso.
func NewProfitUseCase(stock StockLister, sales SaleLister, policy inventory.OrphanPolicy) *ProfitUseCase {
	if policy == "" {
		policy = inventory.OrphanZeroCost
	}
	return &ProfitUseCase{stock: stock, sales: sales, policy: policy}
}

// Compute agrega las ventas con fecha en [from, to]; nil = sin límite en ese extremo.
func (uc *ProfitUseCase) Compute(ctx context.Context, from, to *time.Time) (inventory.ProfitSummary, error) {
	entries, err := uc.stock.List(ctx)
	if err != nil {
		return inventory.ProfitSummary{}, fmt.Errorf("utilidad: leer stock: %w", err)
	}
	sales, err := uc.sales.List(ctx, repository.SaleFilter{From: from, To: to})
	if err != nil {
		return inventory.ProfitSummary{}, fmt.Errorf("utilidad: leer ventas: %w", err)
	}
	return inventory.ComputeProfit(sales, inventory.NewCostTable(entries), uc.policy), nil
}

// Report interpreta el rango YYYY-MM-DD de la consulta y devuelve los totales sin redondear.
func (uc *ProfitUseCase) Report(ctx context.Context, req dto.ProfitReportRequest) (*dto.ProfitReportDTO, error) {
	from, to, err := dto.ParseRange(req.From, req.To, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	sum, err := uc.Compute(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.ProfitReportDTO{
		From:         req.From,
		To:           req.To,
		Revenue:      sum.Revenue,
		Cost:         sum.Cost,
		Profit:       sum.Profit,
		SalesCount:   sum.SalesCount,
		SkippedCost:  sum.SkippedCost,
		Excluded:     sum.Excluded,
		OrphanPolicy: string(uc.policy),
	}, nil
}
