package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mayondo-api/internal/domain/entity"
)

// SaleFilter rango de fechas (inclusivo) para consultar el libro de ventas. nil = sin límite.
type SaleFilter struct {
	From *time.Time
	To   *time.Time
}

// SaleRepository define el puerto del libro de ventas.
// Create asigna Number (consecutivo) si viene en cero. GetByID devuelve (nil, nil) si no existe.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.SaleEntry) error
	Update(ctx context.Context, sale *entity.SaleEntry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.SaleEntry, error)
	List(ctx context.Context, filter SaleFilter) ([]entity.SaleEntry, error)
	Count(ctx context.Context) (int, error)
	LastCodeWithPrefix(ctx context.Context, prefix string) (string, error)
	Search(ctx context.Context, query string, limit int) ([]entity.SaleEntry, error)
}
