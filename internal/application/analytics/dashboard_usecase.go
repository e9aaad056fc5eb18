package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/inventory"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

// DashboardCacheKey clave del resumen en la caché.
const DashboardCacheKey = "mayondo:dashboard:summary"

// DashboardUseCase genera el resumen del negocio: contadores de stock y ventas, utilidad
// histórica y del mes en curso.
//
// El resumen se guarda en caché con TTL y se invalida en cada escritura de los libros
// (implementa ports.LedgerObserver).
type DashboardUseCase struct {
	stock  StockLister
	sales  SaleLister
	cache  DashboardCache
	ttl    time.Duration
	policy inventory.OrphanPolicy
	log    zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	stock StockLister,
	sales SaleLister,
	cache DashboardCache,
	ttl time.Duration,
	policy inventory.OrphanPolicy,
	log zerolog.Logger,
) *DashboardUseCase {
	if policy == "" {
		policy = inventory.OrphanZeroCost
	}
	return &DashboardUseCase{stock: stock, sales: sales, cache: cache, ttl: ttl, policy: policy, log: log}
}

// GetSummary devuelve el resumen desde caché o lo recalcula. Un fallo de caché no es fatal.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if cached, ok, err := uc.cache.Get(ctx, DashboardCacheKey); err != nil {
		uc.log.Warn().Err(err).Msg("dashboard: lectura de caché fallida")
	} else if ok {
		return cached, nil
	}

	summary, err := uc.Build(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, DashboardCacheKey, summary, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Msg("dashboard: escritura de caché fallida")
	}
	return summary, nil
}

// Build calcula el resumen sin caché.
//
// Dos lecturas en paralelo:
//  1. libro de stock  → contadores + tabla de costos
//  2. libro de ventas → utilidad histórica y del mes
func (uc *DashboardUseCase) Build(ctx context.Context, now time.Time) (*dto.DashboardSummaryDTO, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	today := calendarDay(now)

	type stockResult struct {
		entries []entity.StockEntry
		err     error
	}
	type salesResult struct {
		sales []entity.SaleEntry
		err   error
	}
	stockCh := make(chan stockResult, 1)
	salesCh := make(chan salesResult, 1)

	go func() {
		entries, err := uc.stock.List(ctx)
		stockCh <- stockResult{entries, err}
	}()
	go func() {
		sales, err := uc.sales.List(ctx, repository.SaleFilter{})
		salesCh <- salesResult{sales, err}
	}()

	st := <-stockCh
	sl := <-salesCh
	if st.err != nil {
		return nil, fmt.Errorf("dashboard: stock: %w", st.err)
	}
	if sl.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sl.err)
	}

	// ── Contadores de stock ───────────────────────────────────────────────────
	totalItems, outOfStock := 0, 0
	for _, e := range st.entries {
		if e.Quantity > 0 {
			totalItems += e.Quantity
		} else if e.Quantity == 0 {
			outOfStock++
		}
	}

	// ── Utilidad ──────────────────────────────────────────────────────────────
	costs := inventory.NewCostTable(st.entries)
	allTime := inventory.ComputeProfit(sl.sales, costs, uc.policy)

	monthly := make([]entity.SaleEntry, 0, len(sl.sales))
	for _, s := range sl.sales {
		day := calendarDay(s.Date)
		if !day.Before(monthStart) && !day.After(today) {
			monthly = append(monthly, s)
		}
	}
	month := inventory.ComputeProfit(monthly, costs, uc.policy)

	return &dto.DashboardSummaryDTO{
		TotalSales:        len(sl.sales),
		TotalStockItems:   totalItems,
		OutOfStockEntries: outOfStock,
		Revenue:           allTime.Revenue.Round(2),
		Cost:              allTime.Cost.Round(2),
		Profit:            allTime.Profit.Round(2),
		MonthlyRevenue:    month.Revenue.Round(2),
		MonthlyCost:       month.Cost.Round(2),
		MonthlyProfit:     month.Profit.Round(2),
		DateLabel:         monthLabel(now),
		GeneratedAt:       now,
	}, nil
}

// LedgerChanged invalida el resumen en caché.
func (uc *DashboardUseCase) LedgerChanged(ctx context.Context) {
	if err := uc.cache.Delete(ctx, DashboardCacheKey); err != nil {
		uc.log.Warn().Err(err).Msg("dashboard: invalidación de caché fallida")
	}
}

// Warm recalcula y guarda el resumen (lo usa el scheduler).
func (uc *DashboardUseCase) Warm(ctx context.Context) error {
	summary, err := uc.Build(ctx, time.Now())
	if err != nil {
		return err
	}
	return uc.cache.Set(ctx, DashboardCacheKey, summary, uc.ttl)
}

// calendarDay reduce t a su fecha de calendario (medianoche UTC) en su propia zona.
// pgx devuelve las columnas DATE en UTC y el resto de fechas llegan en hora local: se
// compara solo año, mes y día.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
