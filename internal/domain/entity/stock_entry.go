package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Regiones de origen del stock.
const (
	OriginWestern = "Western"
	OriginCentral = "Central"
	OriginEastern = "Eastern"
)

// ValidOrigin indica si la región es una de las admitidas.
func ValidOrigin(origin string) bool {
	switch origin {
	case OriginWestern, OriginCentral, OriginEastern:
		return true
	}
	return false
}

// StockEntry representa un ingreso de inventario (un lote de reposición).
// Varias entradas pueden compartir identidad (reposiciones a distinto costo); nunca se fusionan.
type StockEntry struct {
	ID           string
	Code         string // STK-YYYYMMDD-NNNN
	Product      ProductIdentity
	Quantity     int             // existencias disponibles (>= 0)
	UnitCost     decimal.Decimal // costo por unidad
	TotalCost    decimal.Decimal // Quantity * UnitCost, se recalcula en cada mutación
	SupplierName string
	Origin       string
	Date         time.Time // fecha de recepción
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecomputeTotalCost recalcula TotalCost = Quantity * UnitCost tras cada cambio.
func (s *StockEntry) RecomputeTotalCost() {
	s.TotalCost = decimal.NewFromInt(int64(s.Quantity)).Mul(s.UnitCost)
}
