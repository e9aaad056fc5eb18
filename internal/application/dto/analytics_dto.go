package dto

import "github.com/shopspring/decimal"

// ProfitReportRequest parámetros para GET /api/reports/profit.
type ProfitReportRequest struct {
	From string `query:"from"` // YYYY-MM-DD inclusivo; vacío = sin límite
	To   string `query:"to"`   // YYYY-MM-DD inclusivo; vacío = sin límite
}

// ProfitReportDTO totales del agregador. Los importes no se redondean: la presentación decide.
type ProfitReportDTO struct {
	From         string          `json:"from,omitempty"`
	To           string          `json:"to,omitempty"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"` // negativo = pérdida
	SalesCount   int             `json:"sales_count"`
	SkippedCost  int             `json:"skipped_cost"` // ventas sin costo resoluble (aportan costo cero)
	Excluded     int             `json:"excluded"`     // ventas huérfanas descartadas (política reject)
	OrphanPolicy string          `json:"orphan_policy"`
}
