package inventory

import (
	"context"

	"github.com/jhoicas/mayondo-api/internal/domain/entity"
)

// StockReader lectura del libro de stock que necesitan el validador de disponibilidad y el
// resolvedor de costo. Lo satisfacen repository.StockRepository y sus adaptadores.
type StockReader interface {
	List(ctx context.Context) ([]entity.StockEntry, error)
	ListByProduct(ctx context.Context, product entity.ProductIdentity) ([]entity.StockEntry, error)
}
