package analytics_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mayondo-api/internal/application/analytics"
	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/inventory"
	"github.com/jhoicas/mayondo-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var codeSeq int

func addStock(t *testing.T, store *memory.Store, name, typ string, qty int, cost string) {
	t.Helper()
	codeSeq++
	e := &entity.StockEntry{
		Code:     fmt.Sprintf("STK-T-%04d", codeSeq),
		Product:  entity.NewProductIdentity(name, typ),
		Quantity: qty,
		UnitCost: decimal.RequireFromString(cost),
		Origin:   entity.OriginEastern,
		Date:     time.Now().AddDate(0, -3, 0),
	}
	e.RecomputeTotalCost()
	require.NoError(t, store.StockRepository().Create(context.Background(), e))
}

func addSale(t *testing.T, store *memory.Store, name, typ string, qty int, price string, transport bool, date time.Time) {
	t.Helper()
	codeSeq++
	amount := inventory.PriceSale(qty, decimal.RequireFromString(price), transport).Rounded()
	s := &entity.SaleEntry{
		Code:              fmt.Sprintf("SALE-T-%04d", codeSeq),
		Product:           entity.NewProductIdentity(name, typ),
		Quantity:          qty,
		UnitPrice:         decimal.RequireFromString(price),
		TransportRequired: transport,
		TotalAmount:       amount.Total,
		CustomerName:      "Acme",
		PaymentType:       entity.PaymentCash,
		Date:              date,
	}
	require.NoError(t, store.SaleRepository().Create(context.Background(), s))
}

type memCache struct {
	mu      sync.Mutex
	items   map[string]*dto.DashboardSummaryDTO
	gets    int
	deletes int
}

func newMemCache() *memCache { return &memCache{items: map[string]*dto.DashboardSummaryDTO{}} }

func (c *memCache) Get(_ context.Context, key string) (*dto.DashboardSummaryDTO, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, v *dto.DashboardSummaryDTO, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = v
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	delete(c.items, key)
	return nil
}

type notices struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notices) Notify(_ context.Context, _, _, message string) {
	n.mu.Lock()
	n.msgs = append(n.msgs, message)
	n.mu.Unlock()
}

// ──────────────────────────────────────────────────────────────────────────────
// Utilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestProfit_TransporteYCostoPromedio(t *testing.T) {
	store := memory.New()
	addStock(t, store, "Chair", "Wood", 10, "100")
	addStock(t, store, "Chair", "Wood", 10, "200")
	addSale(t, store, "Chair", "Wood", 2, "300", true, time.Now())
	addSale(t, store, "Bed", "Wood", 1, "500", false, time.Now()) // sin stock: costo cero

	uc := analytics.NewProfitUseCase(store.StockRepository(), store.SaleRepository(), inventory.OrphanZeroCost)
	sum, err := uc.Compute(context.Background(), nil, nil)
	require.NoError(t, err)

	// ingreso = 600 + 30 + 500 = 1130; costo = 2 × 150 = 300
	assert.True(t, sum.Revenue.Equal(decimal.NewFromInt(1130)), sum.Revenue.String())
	assert.True(t, sum.Cost.Equal(decimal.NewFromInt(300)), sum.Cost.String())
	assert.True(t, sum.Profit.Equal(decimal.NewFromInt(830)))
	assert.Equal(t, 2, sum.SalesCount)
	assert.Equal(t, 1, sum.SkippedCost)

	rejecting := analytics.NewProfitUseCase(store.StockRepository(), store.SaleRepository(), inventory.OrphanReject)
	sum, err = rejecting.Compute(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Excluded)
	assert.True(t, sum.Revenue.Equal(decimal.NewFromInt(630)))
}

func TestProfit_PerdidaEsNegativa(t *testing.T) {
	store := memory.New()
	addStock(t, store, "Table", "Metal", 5, "400")
	addSale(t, store, "Table", "Metal", 1, "100", false, time.Now())

	uc := analytics.NewProfitUseCase(store.StockRepository(), store.SaleRepository(), "")
	out, err := uc.Report(context.Background(), dto.ProfitReportRequest{})
	require.NoError(t, err)
	assert.True(t, out.Profit.Equal(decimal.NewFromInt(-300)))
	assert.Equal(t, string(inventory.OrphanZeroCost), out.OrphanPolicy)
}

func TestProfitReport_RangoInclusivo(t *testing.T) {
	store := memory.New()
	addStock(t, store, "Chair", "Wood", 10, "10")
	base := time.Now().AddDate(0, 0, -20)
	d := func(offset int) time.Time {
		return time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, offset)
	}
	addSale(t, store, "Chair", "Wood", 1, "100", false, d(0))
	addSale(t, store, "Chair", "Wood", 1, "200", false, d(5))
	addSale(t, store, "Chair", "Wood", 1, "400", false, d(10))

	uc := analytics.NewProfitUseCase(store.StockRepository(), store.SaleRepository(), inventory.OrphanZeroCost)
	out, err := uc.Report(context.Background(), dto.ProfitReportRequest{
		From: dto.FormatDay(d(5)),
		To:   dto.FormatDay(d(10)),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.SalesCount)
	assert.True(t, out.Revenue.Equal(decimal.NewFromInt(600)))

	_, err = uc.Report(context.Background(), dto.ProfitReportRequest{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardBuild_ContadoresYMes(t *testing.T) {
	store := memory.New()
	addStock(t, store, "Chair", "Wood", 7, "100")
	addStock(t, store, "Sofa", "Leather", 0, "900")
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	addSale(t, store, "Chair", "Wood", 1, "150", false, monthStart)
	addSale(t, store, "Chair", "Wood", 1, "150", false, monthStart.AddDate(0, -1, 0))

	uc := analytics.NewDashboardUseCase(store.StockRepository(), store.SaleRepository(), newMemCache(), time.Minute, "", zerolog.Nop())
	sum, err := uc.Build(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.TotalSales)
	assert.Equal(t, 7, sum.TotalStockItems)
	assert.Equal(t, 1, sum.OutOfStockEntries)
	assert.True(t, sum.Revenue.Equal(decimal.NewFromInt(300)))
	assert.True(t, sum.MonthlyRevenue.Equal(decimal.NewFromInt(150)))
	assert.True(t, sum.MonthlyProfit.Equal(decimal.NewFromInt(50)))
	assert.NotEmpty(t, sum.DateLabel)
}

func TestDashboardBuild_FechasUTCDesdeLaBase(t *testing.T) {
	store := memory.New()
	addStock(t, store, "Chair", "Wood", 5, "60")
	// DATE leído de PostgreSQL: medianoche UTC.
	addSale(t, store, "Chair", "Wood", 1, "100", false, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	addSale(t, store, "Chair", "Wood", 1, "100", false, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	addSale(t, store, "Chair", "Wood", 1, "100", false, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))

	bogota := time.FixedZone("COT", -5*60*60)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, bogota)

	uc := analytics.NewDashboardUseCase(store.StockRepository(), store.SaleRepository(), newMemCache(), time.Minute, "", zerolog.Nop())
	sum, err := uc.Build(context.Background(), now)
	require.NoError(t, err)

	assert.True(t, sum.Revenue.Equal(decimal.NewFromInt(300)), sum.Revenue.String())
	assert.True(t, sum.MonthlyRevenue.Equal(decimal.NewFromInt(200)), sum.MonthlyRevenue.String())
	assert.True(t, sum.MonthlyCost.Equal(decimal.NewFromInt(120)), sum.MonthlyCost.String())
	assert.True(t, sum.MonthlyProfit.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, "Marzo 2026", sum.DateLabel)
}

func TestDashboard_CacheEInvalidacion(t *testing.T) {
	store := memory.New()
	addStock(t, store, "Chair", "Wood", 3, "100")
	c := newMemCache()
	uc := analytics.NewDashboardUseCase(store.StockRepository(), store.SaleRepository(), c, time.Minute, inventory.OrphanZeroCost, zerolog.Nop())
	ctx := context.Background()

	first, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, first.TotalStockItems)

	// Cambia el libro sin avisar: sigue saliendo de caché.
	addStock(t, store, "Chair", "Wood", 2, "100")
	cached, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, cached.TotalStockItems)

	uc.LedgerChanged(ctx)
	assert.Equal(t, 1, c.deletes)
	fresh, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, fresh.TotalStockItems)
}

func TestDashboardWarm_GuardaEnCache(t *testing.T) {
	store := memory.New()
	c := newMemCache()
	uc := analytics.NewDashboardUseCase(store.StockRepository(), store.SaleRepository(), c, time.Minute, "", zerolog.Nop())
	require.NoError(t, uc.Warm(context.Background()))
	_, ok := c.items[analytics.DashboardCacheKey]
	assert.True(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vigilancia de utilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestProfitWatch_AvisaSoloAlCambiarDeSigno(t *testing.T) {
	store := memory.New()
	addStock(t, store, "Chair", "Wood", 10, "100")
	addSale(t, store, "Chair", "Wood", 1, "150", false, time.Now())

	n := &notices{}
	profit := analytics.NewProfitUseCase(store.StockRepository(), store.SaleRepository(), inventory.OrphanZeroCost)
	w := analytics.NewProfitWatch(profit, n, zerolog.Nop())
	ctx := context.Background()

	notified, err := w.Check(ctx)
	require.NoError(t, err)
	assert.False(t, notified, "la primera ejecución solo fija el punto de partida")

	notified, err = w.Check(ctx)
	require.NoError(t, err)
	assert.False(t, notified)

	// Venta a pérdida: 50 - 200 = -150 acumulado
	addSale(t, store, "Chair", "Wood", 4, "50", false, time.Now())
	notified, err = w.Check(ctx)
	require.NoError(t, err)
	assert.True(t, notified)
	require.Len(t, n.msgs, 1)
	assert.Contains(t, n.msgs[0], "pérdida")
}
