package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

// StockLister lectura completa del libro de stock.
type StockLister interface {
	List(ctx context.Context) ([]entity.StockEntry, error)
}

// SaleLister lectura del libro de ventas por rango.
type SaleLister interface {
	List(ctx context.Context, filter repository.SaleFilter) ([]entity.SaleEntry, error)
}

// DashboardCache caché del resumen del dashboard (Redis o no-op).
type DashboardCache interface {
	Get(ctx context.Context, key string) (*dto.DashboardSummaryDTO, bool, error)
	Set(ctx context.Context, key string, value *dto.DashboardSummaryDTO, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
