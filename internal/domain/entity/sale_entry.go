package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pago aceptadas.
const (
	PaymentCash          = "Cash"
	PaymentCheque        = "Cheque"
	PaymentBankOverdraft = "Bank Overdraft"
)

// ValidPaymentType indica si la forma de pago es una de las admitidas.
func ValidPaymentType(p string) bool {
	switch p {
	case PaymentCash, PaymentCheque, PaymentBankOverdraft:
		return true
	}
	return false
}

// SaleEntry representa una venta registrada contra el stock.
type SaleEntry struct {
	ID                string
	Number            int64  // consecutivo para el recibo (MWF-000001)
	Code              string // SALE-YYYYMMDD-NNNN
	Product           ProductIdentity
	Quantity          int
	UnitPrice         decimal.Decimal
	TransportRequired bool
	TotalAmount       decimal.Decimal // Quantity * UnitPrice (+5% con transporte), redondeado a centavos
	CustomerName      string
	SalesAgent        string
	PaymentType       string
	Date              time.Time
	CreatedAt         time.Time
}
