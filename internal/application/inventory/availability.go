package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/inventory"
)

// AvailabilityUseCase consulta el libro de stock y decide si una cantidad puede venderse.
// Solo lectura: el resultado puede quedar obsoleto antes de que el llamador registre la venta.
type AvailabilityUseCase struct {
	stock StockReader
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(stock StockReader) *AvailabilityUseCase {
	return &AvailabilityUseCase{stock: stock}
}

// Check devuelve disponibilidad y existencias totales de la identidad. Una identidad
// desconocida no es error: devuelve {false, 0}.
func (uc *AvailabilityUseCase) Check(ctx context.Context, productName, productType string, requested int) (*dto.AvailabilityResponse, error) {
	product := entity.NewProductIdentity(productName, productType)
	entries, err := uc.stock.ListByProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("disponibilidad: leer stock: %w", err)
	}
	av := inventory.CheckAvailability(entries, product, requested)
	return &dto.AvailabilityResponse{
		ProductName: productName,
		ProductType: productType,
		Requested:   requested,
		Available:   av.Available,
		MaxQuantity: av.MaxQuantity,
	}, nil
}

// Levels existencias por clave "Nombre-Tipo" (espejo que el cliente usa para acotar la cantidad).
func (uc *AvailabilityUseCase) Levels(ctx context.Context) (map[string]int, error) {
	entries, err := uc.stock.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("niveles de stock: %w", err)
	}
	return inventory.StockLevels(entries), nil
}

// CostUseCase resuelve el costo unitario promedio de una identidad.
type CostUseCase struct {
	stock StockReader
}

// NewCostUseCase construye el caso de uso.
func NewCostUseCase(stock StockReader) *CostUseCase {
	return &CostUseCase{stock: stock}
}

// Resolve promedio simple del costo unitario; Resolved=false (costo cero) si no hay entradas.
func (uc *CostUseCase) Resolve(ctx context.Context, productName, productType string) (*dto.UnitCostResponse, error) {
	product := entity.NewProductIdentity(productName, productType)
	entries, err := uc.stock.ListByProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("costo: leer stock: %w", err)
	}
	cost, ok := inventory.ResolveUnitCost(entries, product)
	return &dto.UnitCostResponse{
		ProductName: productName,
		ProductType: productType,
		UnitCost:    cost,
		Resolved:    ok,
	}, nil
}
