package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
	"github.com/jhoicas/mayondo-api/internal/infrastructure/memory"
)

func stockEntry(code string, qty int, date time.Time) *entity.StockEntry {
	e := &entity.StockEntry{
		Code:     code,
		Product:  entity.NewProductIdentity("Chair", "Wood"),
		Quantity: qty,
		UnitCost: decimal.NewFromInt(100),
		Origin:   entity.OriginEastern,
		Date:     date,
	}
	e.RecomputeTotalCost()
	return e
}

func TestStockRepo_OrdenYCodigoDuplicado(t *testing.T) {
	store := memory.New()
	repo := store.StockRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, stockEntry("STK-B", 1, now)))
	require.NoError(t, repo.Create(ctx, stockEntry("STK-A", 1, now)))
	require.NoError(t, repo.Create(ctx, stockEntry("STK-C", 1, now.AddDate(0, 0, -1))))
	assert.ErrorIs(t, repo.Create(ctx, stockEntry("STK-A", 1, now)), domain.ErrDuplicate)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"STK-C", "STK-A", "STK-B"}, []string{list[0].Code, list[1].Code, list[2].Code})

	last, err := repo.LastCodeWithPrefix(ctx, "STK-")
	require.NoError(t, err)
	assert.Equal(t, "STK-C", last)
}

func TestStockRepo_SetQuantityRecalculaTotal(t *testing.T) {
	store := memory.New()
	repo := store.StockRepository()
	ctx := context.Background()
	e := stockEntry("STK-1", 5, time.Now())
	require.NoError(t, repo.Create(ctx, e))

	require.NoError(t, repo.SetQuantity(ctx, e.ID, 2))
	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.True(t, got.TotalCost.Equal(decimal.NewFromInt(200)))

	assert.ErrorIs(t, repo.SetQuantity(ctx, "no-existe", 1), domain.ErrNotFound)
	missing, err := repo.GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStockRepo_IdentidadExacta(t *testing.T) {
	store := memory.New()
	repo := store.StockRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, stockEntry("STK-1", 5, time.Now())))

	list, err := repo.ListByProduct(ctx, entity.NewProductIdentity("chair", "Wood"))
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = repo.ListByProductForUpdate(ctx, entity.NewProductIdentity("Chair", "Wood"))
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSaleRepo_NumeroConsecutivo(t *testing.T) {
	store := memory.New()
	repo := store.SaleRepository()
	ctx := context.Background()

	a := &entity.SaleEntry{Code: "SALE-1", Date: time.Now()}
	b := &entity.SaleEntry{Code: "SALE-2", Date: time.Now()}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, int64(1), a.Number)
	assert.Equal(t, int64(2), b.Number)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.ErrorIs(t, repo.Create(ctx, &entity.SaleEntry{Code: "SALE-1"}), domain.ErrDuplicate)
	assert.ErrorIs(t, repo.Delete(ctx, "no-existe"), domain.ErrNotFound)
}

func TestRun_RestauraSiFalla(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	e := stockEntry("STK-1", 5, time.Now())
	require.NoError(t, store.StockRepository().Create(ctx, e))

	boom := errors.New("boom")
	err := store.Run(ctx, func(stock repository.StockRepository, sales repository.SaleRepository) error {
		require.NoError(t, stock.SetQuantity(ctx, e.ID, 0))
		require.NoError(t, sales.Create(ctx, &entity.SaleEntry{Code: "SALE-1", Date: time.Now()}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.StockRepository().GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
	n, err := store.SaleRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// el consecutivo también vuelve atrás
	s := &entity.SaleEntry{Code: "SALE-2", Date: time.Now()}
	require.NoError(t, store.SaleRepository().Create(ctx, s))
	assert.Equal(t, int64(1), s.Number)
}

func TestRun_ConfirmaSiTodoSaleBien(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	e := stockEntry("STK-1", 5, time.Now())
	require.NoError(t, store.StockRepository().Create(ctx, e))

	err := store.Run(ctx, func(stock repository.StockRepository, _ repository.SaleRepository) error {
		return stock.SetQuantity(ctx, e.ID, 3)
	})
	require.NoError(t, err)

	got, err := store.StockRepository().GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
}

func TestCustomerRepo_NombreUnico(t *testing.T) {
	repo := memory.New().CustomerRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Customer{Name: "Acme"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Customer{Name: "Acme"}), domain.ErrDuplicate)
	// el nombre distingue mayúsculas, igual que en la base de datos
	require.NoError(t, repo.Create(ctx, &entity.Customer{Name: "acme"}))
}
