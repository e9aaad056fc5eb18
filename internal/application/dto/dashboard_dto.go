package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalSales        int `json:"total_sales"`          // ventas registradas
	TotalStockItems   int `json:"total_stock_items"`    // suma de existencias
	OutOfStockEntries int `json:"out_of_stock_entries"` // entradas con existencia 0

	// Histórico completo
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`

	// Mes en curso (día 1 – hoy)
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	MonthlyCost    decimal.Decimal `json:"monthly_cost"`
	MonthlyProfit  decimal.Decimal `json:"monthly_profit"`

	DateLabel   string    `json:"date_label"` // ej: "Octubre 2026"
	GeneratedAt time.Time `json:"generated_at"`
}
