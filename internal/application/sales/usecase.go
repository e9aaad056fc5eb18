// Package sales registra ventas contra el libro de stock.
package sales

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
	"github.com/jhoicas/mayondo-api/internal/domain/inventory"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

// codeAttempts reintentos si otra venta concurrente tomó el mismo código del día.
const codeAttempts = 3

// Options comportamiento configurable del registro de ventas.
type Options struct {
	// DecrementStock descuenta la cantidad vendida de las entradas coincidentes (la más antigua primero).
	// Con false el libro de stock no cambia al vender y dos ventas concurrentes pueden superar las existencias.
	DecrementStock bool
	OrphanPolicy   inventory.OrphanPolicy
}

// SaleUseCase casos de uso del libro de ventas.
type SaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	notifier ports.Notifier
	observer ports.LedgerObserver
	opts     Options
	log      zerolog.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	notifier ports.Notifier,
	observer ports.LedgerObserver,
	opts Options,
	log zerolog.Logger,
) *SaleUseCase {
	if opts.OrphanPolicy == "" {
		opts.OrphanPolicy = inventory.OrphanZeroCost
	}
	return &SaleUseCase{
		txRunner: txRunner,
		saleRepo: saleRepo,
		notifier: notifier,
		observer: observer,
		opts:     opts,
		log:      log,
	}
}

// RecordSale valida la entrada, bloquea las entradas de stock de la identidad (SELECT FOR UPDATE),
// vuelve a validar disponibilidad sobre las filas bloqueadas, guarda la venta y, si está
// configurado, descuenta existencias. Todo en una sola transacción.
//
// Errores:
//   - domain.ErrInvalidInput     datos inválidos.
//   - *domain.InsufficientStockError (errors.Is ErrInsufficientStock) si no alcanza.
//   - domain.ErrUnknownProduct   identidad sin stock con la política reject.
func (uc *SaleUseCase) RecordSale(ctx context.Context, in dto.SaleRequest) (*dto.SaleResponse, error) {
	now := time.Now()
	sale, err := buildSale(in, now)
	if err != nil {
		return nil, err
	}
	sale.CreatedAt = now

	var remaining int
	dayPrefix := entity.CodeDayPrefix(entity.SaleCodePrefix, now)
	for attempt := 1; ; attempt++ {
		sale.ID = uuid.New().String()
		sale.Number = 0
		err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, saleRepo repository.SaleRepository) error {
			left, err := uc.reserve(ctx, stockRepo, sale.Product, sale.Quantity)
			if err != nil {
				return err
			}
			remaining = left

			last, err := saleRepo.LastCodeWithPrefix(ctx, dayPrefix)
			if err != nil {
				return fmt.Errorf("ventas: último código: %w", err)
			}
			sale.Code = entity.NextCode(entity.SaleCodePrefix, now, last)
			if err := saleRepo.Create(ctx, sale); err != nil {
				return fmt.Errorf("ventas: crear: %w", err)
			}
			return nil
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt == codeAttempts {
			return nil, err
		}
	}

	uc.log.Info().Str("code", sale.Code).Str("product", sale.Product.String()).
		Int("quantity", sale.Quantity).Str("total", sale.TotalAmount.StringFixed(2)).Msg("venta registrada")

	msg := fmt.Sprintf("Nueva venta: %s (%d) por %s", sale.Product.Name, sale.Quantity, sale.SalesAgent)
	if sale.TransportRequired {
		msg += " (incluye 5% de transporte)"
	}
	uc.notifier.Notify(ctx, entity.AudienceManager, entity.ActivitySuccess, msg)
	if uc.opts.DecrementStock && remaining == 0 {
		uc.notifier.Notify(ctx, entity.AudienceAll, entity.ActivityWarning,
			fmt.Sprintf("Sin existencias: %s - %s", sale.Product.Name, sale.Product.Type))
	}
	uc.observer.LedgerChanged(ctx)
	return toSaleResponse(sale), nil
}

// reserve valida disponibilidad sobre las filas bloqueadas y, con DecrementStock, descuenta.
// Devuelve las existencias que quedan para la identidad.
func (uc *SaleUseCase) reserve(ctx context.Context, stockRepo repository.StockRepository, product entity.ProductIdentity, quantity int) (int, error) {
	entries, err := stockRepo.ListByProductForUpdate(ctx, product)
	if err != nil {
		return 0, fmt.Errorf("ventas: bloquear stock: %w", err)
	}
	if len(entries) == 0 && uc.opts.OrphanPolicy == inventory.OrphanReject {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, product)
	}
	av := inventory.CheckAvailability(entries, product, quantity)
	if !av.Available {
		return 0, &domain.InsufficientStockError{
			ProductName: product.Name,
			ProductType: product.Type,
			Requested:   quantity,
			Available:   av.MaxQuantity,
		}
	}
	if !uc.opts.DecrementStock {
		return av.MaxQuantity, nil
	}
	plan, ok := inventory.PlanDecrement(entries, product, quantity)
	if !ok {
		return 0, &domain.InsufficientStockError{
			ProductName: product.Name,
			ProductType: product.Type,
			Requested:   quantity,
			Available:   av.MaxQuantity,
		}
	}
	for _, d := range plan {
		if err := stockRepo.SetQuantity(ctx, d.EntryID, d.NewQuantity); err != nil {
			return 0, fmt.Errorf("ventas: descontar stock: %w", err)
		}
	}
	return av.MaxQuantity - quantity, nil
}

// GetByID obtiene una venta; domain.ErrNotFound si no existe.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ventas: obtener: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// List ventas en el rango [from, to] (YYYY-MM-DD, ambos opcionales).
func (uc *SaleUseCase) List(ctx context.Context, from, to string) (*dto.SaleListResponse, error) {
	start, end, err := dto.ParseRange(from, to, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	list, err := uc.saleRepo.List(ctx, repository.SaleFilter{From: start, To: end})
	if err != nil {
		return nil, fmt.Errorf("ventas: listar: %w", err)
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for i := range list {
		items = append(items, *toSaleResponse(&list[i]))
	}
	return &dto.SaleListResponse{Items: items, Total: len(items)}, nil
}

// Update reemplaza los datos de una venta y recalcula el total. Solo la cantidad adicional
// (o la cantidad completa si cambia la identidad) se valida y descuenta del stock; las
// reducciones no devuelven existencias.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	now := time.Now()
	updated, err := buildSale(in, now)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, saleRepo repository.SaleRepository) error {
		existing, err := saleRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("ventas: obtener: %w", err)
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		needed := updated.Quantity
		if entity.Matches(existing.Product, updated.Product) {
			needed = updated.Quantity - existing.Quantity
		}
		if needed > 0 {
			if _, err := uc.reserve(ctx, stockRepo, updated.Product, needed); err != nil {
				return err
			}
		}
		updated.ID = existing.ID
		updated.Number = existing.Number
		updated.Code = existing.Code
		updated.CreatedAt = existing.CreatedAt
		if err := saleRepo.Update(ctx, updated); err != nil {
			return fmt.Errorf("ventas: actualizar: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.observer.LedgerChanged(ctx)
	return toSaleResponse(updated), nil
}

// Delete elimina una venta. No devuelve existencias al stock.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.saleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("ventas: eliminar: %w", err)
	}
	uc.observer.LedgerChanged(ctx)
	return nil
}

func buildSale(in dto.SaleRequest, now time.Time) (*entity.SaleEntry, error) {
	product := entity.NewProductIdentity(in.ProductName, in.ProductType)
	if !product.IsValid() {
		return nil, fmt.Errorf("%w: nombre y tipo de producto son obligatorios", domain.ErrInvalidInput)
	}
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	if !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el precio unitario debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !entity.ValidPaymentType(in.PaymentType) {
		return nil, fmt.Errorf("%w: forma de pago %q no admitida", domain.ErrInvalidInput, in.PaymentType)
	}
	if in.CustomerName == "" {
		return nil, fmt.Errorf("%w: el cliente es obligatorio", domain.ErrInvalidInput)
	}
	day, err := dto.ParseDay(in.Date, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if dto.IsFutureDay(day, now) {
		return nil, fmt.Errorf("%w: la fecha no puede ser futura", domain.ErrInvalidInput)
	}
	amount := inventory.PriceSale(in.Quantity, in.UnitPrice, in.TransportRequired).Rounded()
	return &entity.SaleEntry{
		Product:           product,
		Quantity:          in.Quantity,
		UnitPrice:         in.UnitPrice,
		TransportRequired: in.TransportRequired,
		TotalAmount:       amount.Total,
		CustomerName:      in.CustomerName,
		SalesAgent:        in.SalesAgent,
		PaymentType:       in.PaymentType,
		Date:              day,
	}, nil
}

func toSaleResponse(s *entity.SaleEntry) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:                s.ID,
		Number:            s.Number,
		Code:              s.Code,
		ProductName:       s.Product.Name,
		ProductType:       s.Product.Type,
		Quantity:          s.Quantity,
		UnitPrice:         s.UnitPrice,
		TransportRequired: s.TransportRequired,
		TotalAmount:       s.TotalAmount,
		CustomerName:      s.CustomerName,
		SalesAgent:        s.SalesAgent,
		PaymentType:       s.PaymentType,
		Date:              dto.FormatDay(s.Date),
		CreatedAt:         s.CreatedAt,
	}
}

// ToSaleResponse expone el mapeo para búsqueda y reportes.
func ToSaleResponse(s *entity.SaleEntry) *dto.SaleResponse { return toSaleResponse(s) }
