package repository

import (
	"context"

	"github.com/jhoicas/mayondo-api/internal/domain/entity"
)

// StockRepository define el puerto del libro de stock.
// GetByID devuelve (nil, nil) si no existe.
type StockRepository interface {
	Create(ctx context.Context, entry *entity.StockEntry) error
	Update(ctx context.Context, entry *entity.StockEntry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.StockEntry, error)
	List(ctx context.Context) ([]entity.StockEntry, error)
	// ListByProduct filtra por igualdad exacta de nombre y tipo.
	ListByProduct(ctx context.Context, product entity.ProductIdentity) ([]entity.StockEntry, error)
	// ListByProductForUpdate igual que ListByProduct pero bloquea las filas (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	ListByProductForUpdate(ctx context.Context, product entity.ProductIdentity) ([]entity.StockEntry, error)
	// SetQuantity actualiza la existencia y recalcula total_cost.
	SetQuantity(ctx context.Context, id string, quantity int) error
	LastCodeWithPrefix(ctx context.Context, prefix string) (string, error)
	Search(ctx context.Context, query string, limit int) ([]entity.StockEntry, error)
}
