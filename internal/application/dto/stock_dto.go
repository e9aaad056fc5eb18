package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRequest body para POST /api/stock y PUT /api/stock/:id.
// Date en formato YYYY-MM-DD; vacío = hoy.
type StockRequest struct {
	ProductName  string          `json:"product_name" validate:"required"`
	ProductType  string          `json:"product_type" validate:"required"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	SupplierName string          `json:"supplier_name"`
	Origin       string          `json:"origin" validate:"oneof=Western Central Eastern"`
	Date         string          `json:"date"`
}

// StockEntryResponse salida de una entrada de stock.
type StockEntryResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	ProductName  string          `json:"product_name"`
	ProductType  string          `json:"product_type"`
	Quantity     int             `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	SupplierName string          `json:"supplier_name"`
	Origin       string          `json:"origin"`
	Date         string          `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockListResponse libro de stock completo.
type StockListResponse struct {
	Items []StockEntryResponse `json:"items"`
	Total int                  `json:"total"`
}

// AvailabilityResponse salida de GET /api/stock/availability.
// MaxQuantity es el tope que la UI usa para acotar la cantidad de la venta.
type AvailabilityResponse struct {
	ProductName string `json:"product_name"`
	ProductType string `json:"product_type"`
	Requested   int    `json:"requested"`
	Available   bool   `json:"available"`
	MaxQuantity int    `json:"max_quantity"`
}

// UnitCostResponse salida de GET /api/stock/cost. Resolved=false: sin entradas, costo cero.
type UnitCostResponse struct {
	ProductName string          `json:"product_name"`
	ProductType string          `json:"product_type"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Resolved    bool            `json:"resolved"`
}

// InsufficientStockResponse cuerpo 409 cuando la venta supera las existencias.
type InsufficientStockResponse struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	ProductName string `json:"product_name"`
	ProductType string `json:"product_type"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
	Shortfall   int    `json:"shortfall"`
}
