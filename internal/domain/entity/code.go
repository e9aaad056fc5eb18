package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Prefijos de los códigos legibles.
const (
	StockCodePrefix = "STK"
	SaleCodePrefix  = "SALE"
)

// CodeDayPrefix devuelve "PREFIJO-YYYYMMDD-" para el día dado.
func CodeDayPrefix(prefix string, day time.Time) string {
	return fmt.Sprintf("%s-%s-", prefix, day.Format("20060102"))
}

// NextCode genera el siguiente código del día a partir del último emitido (vacío si no hay).
// Formato: PREFIJO-YYYYMMDD-NNNN, ej. STK-20251229-0001.
func NextCode(prefix string, day time.Time, last string) string {
	dayPrefix := CodeDayPrefix(prefix, day)
	seq := 1
	if strings.HasPrefix(last, dayPrefix) {
		if n, err := strconv.Atoi(strings.TrimPrefix(last, dayPrefix)); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", dayPrefix, seq)
}

// ReceiptNumber número de recibo de una venta, ej. MWF-000001.
func ReceiptNumber(saleNumber int64) string {
	return fmt.Sprintf("MWF-%06d", saleNumber)
}
