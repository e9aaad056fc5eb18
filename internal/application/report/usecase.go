// Package report exporta los libros de ventas y stock (solo gerentes).
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/inventory"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

// Exporter genera el archivo del reporte (XLSX en producción).
type Exporter interface {
	SalesReport(ctx context.Context, sales []entity.SaleEntry, summary inventory.ProfitSummary) ([]byte, error)
	StockReport(ctx context.Context, entries []entity.StockEntry) ([]byte, error)
}

// UseCase arma los reportes a partir de los libros.
type UseCase struct {
	stockRepo repository.StockRepository
	saleRepo  repository.SaleRepository
	exporter  Exporter
	policy    inventory.OrphanPolicy
}

// NewUseCase construye el caso de uso.
func NewUseCase(stockRepo repository.StockRepository, saleRepo repository.SaleRepository, exporter Exporter, policy inventory.OrphanPolicy) *UseCase {
	if policy == "" {
		policy = inventory.OrphanZeroCost
	}
	return &UseCase{stockRepo: stockRepo, saleRepo: saleRepo, exporter: exporter, policy: policy}
}

// SalesReport ventas del rango [from, to] (YYYY-MM-DD, opcionales) con totales de utilidad.
// Devuelve bytes y nombre de archivo.
func (uc *UseCase) SalesReport(ctx context.Context, fromStr, toStr string) ([]byte, string, error) {
	from, to, err := dto.ParseRange(fromStr, toStr, time.Now())
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	sales, err := uc.saleRepo.List(ctx, repository.SaleFilter{From: from, To: to})
	if err != nil {
		return nil, "", fmt.Errorf("reporte de ventas: %w", err)
	}
	entries, err := uc.stockRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte de ventas: stock: %w", err)
	}
	summary := inventory.ComputeProfit(sales, inventory.NewCostTable(entries), uc.policy)
	data, err := uc.exporter.SalesReport(ctx, sales, summary)
	if err != nil {
		return nil, "", fmt.Errorf("reporte de ventas: exportar: %w", err)
	}
	return data, fmt.Sprintf("ventas_%s.xlsx", time.Now().Format("20060102")), nil
}

// StockReport libro de stock completo.
func (uc *UseCase) StockReport(ctx context.Context) ([]byte, string, error) {
	entries, err := uc.stockRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte de stock: %w", err)
	}
	data, err := uc.exporter.StockReport(ctx, entries)
	if err != nil {
		return nil, "", fmt.Errorf("reporte de stock: exportar: %w", err)
	}
	return data, fmt.Sprintf("stock_%s.xlsx", time.Now().Format("20060102")), nil
}
