package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/application/sales"
	"github.com/jhoicas/mayondo-api/internal/domain"
)

type fakePDF struct {
	got *dto.ReceiptDTO
	err error
}

func (g *fakePDF) GenerateReceiptPDF(_ context.Context, r *dto.ReceiptDTO) ([]byte, error) {
	g.got = r
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestReceipt_DesglosaTransporte(t *testing.T) {
	f := newFixture(t, decrementOn)
	f.addStock(t, "Wardrobe", "Wood", 3, "400", day(1))
	ctx := context.Background()

	created, err := f.uc.RecordSale(ctx, saleReq("Wardrobe", "Wood", 2, "333.33", true))
	require.NoError(t, err)

	gen := &fakePDF{}
	uc := sales.NewReceiptUseCase(f.store.SaleRepository(), gen)
	r, err := uc.Receipt(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "MWF-000001", r.ReceiptNumber)
	assert.True(t, r.Subtotal.Equal(decimal.RequireFromString("666.66")))
	// 5% de 666.66 = 33.333 → 33.33
	assert.True(t, r.TransportFee.Equal(decimal.RequireFromString("33.33")), r.TransportFee.String())
	assert.True(t, r.Total.Equal(created.TotalAmount), "el total del recibo coincide con el guardado")

	data, filename, err := uc.ReceiptPDF(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "recibo_MWF-000001.pdf", filename)
	assert.Equal(t, []byte("%PDF-fake"), data)
	assert.Equal(t, created.Code, gen.got.SaleCode)
}

func TestReceipt_VentaInexistente(t *testing.T) {
	f := newFixture(t, decrementOn)
	uc := sales.NewReceiptUseCase(f.store.SaleRepository(), &fakePDF{})
	_, err := uc.Receipt(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiptPDF_ErrorDelGenerador(t *testing.T) {
	f := newFixture(t, decrementOn)
	f.addStock(t, "Bed", "Wood", 1, "200", day(1))
	created, err := f.uc.RecordSale(context.Background(), saleReq("Bed", "Wood", 1, "300", false))
	require.NoError(t, err)

	boom := errors.New("fuente no disponible")
	uc := sales.NewReceiptUseCase(f.store.SaleRepository(), &fakePDF{err: boom})
	_, _, err = uc.ReceiptPDF(context.Background(), created.ID)
	assert.ErrorIs(t, err, boom)
}
