package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/inventory"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

// ReceiptUseCase arma el recibo de una venta (JSON o PDF).
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(saleRepo repository.SaleRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, generator: generator}
}

// Receipt desglosa subtotal, cargo de transporte y total de la venta.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, saleID string) (*dto.ReceiptDTO, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	amount := inventory.PriceSale(sale.Quantity, sale.UnitPrice, sale.TransportRequired).Rounded()
	return &dto.ReceiptDTO{
		ReceiptNumber:     entity.ReceiptNumber(sale.Number),
		SaleCode:          sale.Code,
		Date:              dto.FormatDay(sale.Date),
		CustomerName:      sale.CustomerName,
		SalesAgent:        sale.SalesAgent,
		PaymentType:       sale.PaymentType,
		ProductName:       sale.Product.Name,
		ProductType:       sale.Product.Type,
		Quantity:          sale.Quantity,
		UnitPrice:         sale.UnitPrice,
		TransportRequired: sale.TransportRequired,
		Subtotal:          amount.Subtotal,
		TransportFee:      amount.Surcharge,
		Total:             amount.Total,
	}, nil
}

// ReceiptPDF devuelve el PDF del recibo y un nombre de archivo sugerido.
func (uc *ReceiptUseCase) ReceiptPDF(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	receipt, err := uc.Receipt(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recibo_%s.pdf", receipt.ReceiptNumber), nil
}
