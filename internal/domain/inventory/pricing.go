package inventory

import "github.com/shopspring/decimal"

// TransportSurchargeRate recargo por transporte sobre el subtotal (5%).
var TransportSurchargeRate = decimal.RequireFromString("0.05")

// SaleAmount desglose del importe de una venta.
type SaleAmount struct {
	Subtotal  decimal.Decimal // cantidad * precio unitario
	Surcharge decimal.Decimal // 5% del subtotal si requiere transporte
	Total     decimal.Decimal
}

// PriceSale calcula subtotal, recargo y total. El recargo se aplica sobre el subtotal, sin componer.
func PriceSale(quantity int, unitPrice decimal.Decimal, transportRequired bool) SaleAmount {
	subtotal := decimal.NewFromInt(int64(quantity)).Mul(unitPrice)
	surcharge := decimal.Zero
	if transportRequired {
		surcharge = subtotal.Mul(TransportSurchargeRate)
	}
	return SaleAmount{
		Subtotal:  subtotal,
		Surcharge: surcharge,
		Total:     subtotal.Add(surcharge),
	}
}

// Rounded redondea cada componente a centavos (mitad hacia arriba), como se guarda en la venta.
func (a SaleAmount) Rounded() SaleAmount {
	return SaleAmount{
		Subtotal:  a.Subtotal.Round(2),
		Surcharge: a.Surcharge.Round(2),
		Total:     a.Total.Round(2),
	}
}
