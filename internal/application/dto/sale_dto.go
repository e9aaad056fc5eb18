package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest body para POST /api/sales y PUT /api/sales/:id.
// Date en formato YYYY-MM-DD; vacío = hoy.
type SaleRequest struct {
	ProductName       string          `json:"product_name" validate:"required"`
	ProductType       string          `json:"product_type" validate:"required"`
	Quantity          int             `json:"quantity" validate:"min=1"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TransportRequired bool            `json:"transport_required"`
	CustomerName      string          `json:"customer_name" validate:"required"`
	SalesAgent        string          `json:"sales_agent"`
	PaymentType       string          `json:"payment_type" validate:"oneof=Cash Cheque 'Bank Overdraft'"`
	Date              string          `json:"date"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID                string          `json:"id"`
	Number            int64           `json:"number"`
	Code              string          `json:"code"`
	ProductName       string          `json:"product_name"`
	ProductType       string          `json:"product_type"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TransportRequired bool            `json:"transport_required"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	CustomerName      string          `json:"customer_name"`
	SalesAgent        string          `json:"sales_agent"`
	PaymentType       string          `json:"payment_type"`
	Date              string          `json:"date"`
	CreatedAt         time.Time       `json:"created_at"`
}

// SaleListResponse ventas del rango consultado.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}

// ReceiptDTO respuesta de GET /api/sales/:id/receipt.
type ReceiptDTO struct {
	ReceiptNumber     string          `json:"receipt_number"` // MWF-000001
	SaleCode          string          `json:"sale_code"`
	Date              string          `json:"date"`
	CustomerName      string          `json:"customer_name"`
	SalesAgent        string          `json:"sales_agent"`
	PaymentType       string          `json:"payment_type"`
	ProductName       string          `json:"product_name"`
	ProductType       string          `json:"product_type"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TransportRequired bool            `json:"transport_required"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	TransportFee      decimal.Decimal `json:"transport_fee"`
	Total             decimal.Decimal `json:"total"`
}
