// Package search busca en los libros de ventas y stock.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	appinventory "github.com/jhoicas/mayondo-api/internal/application/inventory"
	"github.com/jhoicas/mayondo-api/internal/application/sales"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

// DefaultLimit resultados máximos por libro.
const DefaultLimit = 20

// UseCase búsqueda parcial sin distinguir mayúsculas.
type UseCase struct {
	stockRepo repository.StockRepository
	saleRepo  repository.SaleRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(stockRepo repository.StockRepository, saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{stockRepo: stockRepo, saleRepo: saleRepo}
}

// Search consulta ambos libros. Una consulta vacía devuelve listas vacías.
func (uc *UseCase) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	q := strings.TrimSpace(query)
	out := &dto.SearchResponse{
		Query: q,
		Sales: []dto.SaleResponse{},
		Stock: []dto.StockEntryResponse{},
	}
	if q == "" {
		return out, nil
	}

	saleList, err := uc.saleRepo.Search(ctx, q, DefaultLimit)
	if err != nil {
		return nil, fmt.Errorf("búsqueda: ventas: %w", err)
	}
	for i := range saleList {
		out.Sales = append(out.Sales, *sales.ToSaleResponse(&saleList[i]))
	}

	stockList, err := uc.stockRepo.Search(ctx, q, DefaultLimit)
	if err != nil {
		return nil, fmt.Errorf("búsqueda: stock: %w", err)
	}
	for i := range stockList {
		out.Stock = append(out.Stock, *appinventory.ToStockResponse(&stockList[i]))
	}
	return out, nil
}
