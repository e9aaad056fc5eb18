package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/application/ports"
	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

// codeAttempts reintentos al generar el código del día si otro alta tomó el mismo consecutivo.
const codeAttempts = 3

// StockUseCase casos de uso CRUD del libro de stock.
// Cada alta es una entrada nueva; entradas con la misma identidad nunca se fusionan.
type StockUseCase struct {
	repo     repository.StockRepository
	notifier ports.Notifier
	observer ports.LedgerObserver
	log      zerolog.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	repo repository.StockRepository,
	notifier ports.Notifier,
	observer ports.LedgerObserver,
	log zerolog.Logger,
) *StockUseCase {
	return &StockUseCase{repo: repo, notifier: notifier, observer: observer, log: log}
}

// Create registra un ingreso de stock con código STK-YYYYMMDD-NNNN y notifica a los gerentes.
func (uc *StockUseCase) Create(ctx context.Context, in dto.StockRequest) (*dto.StockEntryResponse, error) {
	now := time.Now()
	entry, err := buildStockEntry(in, now)
	if err != nil {
		return nil, err
	}
	entry.ID = uuid.New().String()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	dayPrefix := entity.CodeDayPrefix(entity.StockCodePrefix, now)
	for attempt := 1; ; attempt++ {
		last, err := uc.repo.LastCodeWithPrefix(ctx, dayPrefix)
		if err != nil {
			return nil, fmt.Errorf("stock: último código: %w", err)
		}
		entry.Code = entity.NextCode(entity.StockCodePrefix, now, last)
		err = uc.repo.Create(ctx, entry)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt == codeAttempts {
			return nil, fmt.Errorf("stock: crear: %w", err)
		}
	}

	uc.log.Info().Str("code", entry.Code).Str("product", entry.Product.String()).
		Int("quantity", entry.Quantity).Msg("stock registrado")
	uc.notifier.Notify(ctx, entity.AudienceManager, entity.ActivityInfo,
		fmt.Sprintf("Nuevo stock: %s (%d) de %s", entry.Product.Name, entry.Quantity, entry.SupplierName))
	uc.observer.LedgerChanged(ctx)
	return toStockResponse(entry), nil
}

// GetByID obtiene una entrada; domain.ErrNotFound si no existe.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*dto.StockEntryResponse, error) {
	entry, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("stock: obtener: %w", err)
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return toStockResponse(entry), nil
}

// List devuelve el libro completo ordenado por fecha.
func (uc *StockUseCase) List(ctx context.Context) (*dto.StockListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock: listar: %w", err)
	}
	items := make([]dto.StockEntryResponse, 0, len(list))
	for i := range list {
		items = append(items, *toStockResponse(&list[i]))
	}
	return &dto.StockListResponse{Items: items, Total: len(items)}, nil
}

// Update reemplaza los datos de una entrada y recalcula TotalCost. El código no cambia.
func (uc *StockUseCase) Update(ctx context.Context, id string, in dto.StockRequest) (*dto.StockEntryResponse, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("stock: obtener: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	updated, err := buildStockEntry(in, now)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.Code = existing.Code
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = now
	if err := uc.repo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("stock: actualizar: %w", err)
	}
	uc.observer.LedgerChanged(ctx)
	return toStockResponse(updated), nil
}

// Delete elimina una entrada. Las ventas que la referenciaban quedan huérfanas si era la única.
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("stock: eliminar: %w", err)
	}
	uc.observer.LedgerChanged(ctx)
	return nil
}

func buildStockEntry(in dto.StockRequest, now time.Time) (*entity.StockEntry, error) {
	product := entity.NewProductIdentity(in.ProductName, in.ProductType)
	if !product.IsValid() {
		return nil, fmt.Errorf("%w: nombre y tipo de producto son obligatorios", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if !in.UnitCost.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el costo unitario debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !entity.ValidOrigin(in.Origin) {
		return nil, fmt.Errorf("%w: origen %q no admitido", domain.ErrInvalidInput, in.Origin)
	}
	day, err := dto.ParseDay(in.Date, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if dto.IsFutureDay(day, now) {
		return nil, fmt.Errorf("%w: la fecha no puede ser futura", domain.ErrInvalidInput)
	}
	entry := &entity.StockEntry{
		Product:      product,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		SupplierName: in.SupplierName,
		Origin:       in.Origin,
		Date:         day,
	}
	entry.RecomputeTotalCost()
	return entry, nil
}

func toStockResponse(e *entity.StockEntry) *dto.StockEntryResponse {
	return &dto.StockEntryResponse{
		ID:           e.ID,
		Code:         e.Code,
		ProductName:  e.Product.Name,
		ProductType:  e.Product.Type,
		Quantity:     e.Quantity,
		UnitCost:     e.UnitCost,
		TotalCost:    e.TotalCost,
		SupplierName: e.SupplierName,
		Origin:       e.Origin,
		Date:         dto.FormatDay(e.Date),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// ToStockResponse expone el mapeo para búsqueda y reportes.
func ToStockResponse(e *entity.StockEntry) *dto.StockEntryResponse { return toStockResponse(e) }
