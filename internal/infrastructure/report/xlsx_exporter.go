// Package report genera los reportes XLSX de ventas y stock con excelize.
package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/inventory"
)

const (
	salesSheet = "Ventas"
	stockSheet = "Stock"
	dateLayout = "2006-01-02"
)

var (
	salesHeader = []interface{}{
		"Código", "Fecha", "Producto", "Tipo", "Cantidad", "Precio unitario",
		"Transporte", "Total", "Cliente", "Vendedor", "Forma de pago",
	}
	stockHeader = []interface{}{
		"Código", "Fecha", "Producto", "Tipo", "Cantidad", "Costo unitario",
		"Costo total", "Proveedor", "Origen",
	}
)

// XLSXExporter implementa report.Exporter. Los importes se escriben como texto con dos
// decimales para no pasar por float.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

// SalesReport una fila por venta más el bloque de totales.
func (x *XLSXExporter) SalesReport(_ context.Context, sales []entity.SaleEntry, summary inventory.ProfitSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}
	if err := writeHeader(f, salesSheet, salesHeader); err != nil {
		return nil, err
	}

	row := 2
	for _, s := range sales {
		transport := "No"
		if s.TransportRequired {
			transport = "Sí"
		}
		values := []interface{}{
			s.Code, s.Date.Format(dateLayout), s.Product.Name, s.Product.Type, s.Quantity,
			s.UnitPrice.StringFixed(2), transport, s.TotalAmount.StringFixed(2),
			s.CustomerName, s.SalesAgent, s.PaymentType,
		}
		if err := setRow(f, salesSheet, row, values); err != nil {
			return nil, err
		}
		row++
	}

	// ── Totales ───────────────────────────────────────────────────────────────
	row++
	totals := [][]interface{}{
		{"Ingresos", summary.Revenue.StringFixed(2)},
		{"Costo", summary.Cost.StringFixed(2)},
		{"Utilidad", summary.Profit.StringFixed(2)},
		{"Ventas agregadas", summary.SalesCount},
		{"Ventas sin costo", summary.SkippedCost},
		{"Ventas excluidas", summary.Excluded},
	}
	for _, t := range totals {
		if err := setRow(f, salesSheet, row, t); err != nil {
			return nil, err
		}
		row++
	}
	return write(f)
}

// StockReport una fila por entrada de stock.
func (x *XLSXExporter) StockReport(_ context.Context, entries []entity.StockEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", stockSheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}
	if err := writeHeader(f, stockSheet, stockHeader); err != nil {
		return nil, err
	}
	for i, e := range entries {
		values := []interface{}{
			e.Code, e.Date.Format(dateLayout), e.Product.Name, e.Product.Type, e.Quantity,
			e.UnitCost.StringFixed(2), e.TotalCost.StringFixed(2), e.SupplierName, e.Origin,
		}
		if err := setRow(f, stockSheet, i+2, values); err != nil {
			return nil, err
		}
	}
	return write(f)
}

func writeHeader(f *excelize.File, sheet string, header []interface{}) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}
	lastCol, _, _ := excelize.SplitCellName(last)
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", row, err)
	}
	return nil
}

func write(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
