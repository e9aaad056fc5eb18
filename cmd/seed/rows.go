package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
)

// Columnas esperadas (la primera fila es el encabezado).
var (
	stockColumns = []string{"product_name", "product_type", "quantity", "unit_cost", "supplier_name", "origin", "date"}
	saleColumns  = []string{"product_name", "product_type", "quantity", "unit_price", "transport_required", "customer_name", "sales_agent", "payment_type", "date"}
)

// decoderFor devuelve el lector para el charset de los CSV exportados desde hojas de cálculo antiguas.
func decoderFor(charset string, r io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
}

// readTable lee un CSV (con charset) o la primera hoja de un XLSX.
func readTable(path, charset string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("abrir XLSX: %w", err)
		}
		defer f.Close()
		return f.GetRows(f.GetSheetName(0))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir CSV: %w", err)
	}
	defer file.Close()
	r, err := decoderFor(charset, file)
	if err != nil {
		return nil, err
	}
	return parseCSV(r)
}

func parseCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

// columnIndex ubica cada columna requerida en el encabezado (sin distinguir mayúsculas).
func columnIndex(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}
	return idx, nil
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// stockRequests convierte la tabla en requests; los errores indican la fila (1 = encabezado).
func stockRequests(table [][]string) ([]dto.StockRequest, error) {
	if len(table) == 0 {
		return nil, nil
	}
	idx, err := columnIndex(table[0], stockColumns)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockRequest, 0, len(table)-1)
	for n, row := range table[1:] {
		line := n + 2
		qty, err := strconv.Atoi(cell(row, idx, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("fila %d: quantity: %w", line, err)
		}
		cost, err := decimal.NewFromString(cell(row, idx, "unit_cost"))
		if err != nil {
			return nil, fmt.Errorf("fila %d: unit_cost: %w", line, err)
		}
		out = append(out, dto.StockRequest{
			ProductName:  cell(row, idx, "product_name"),
			ProductType:  cell(row, idx, "product_type"),
			Quantity:     qty,
			UnitCost:     cost,
			SupplierName: cell(row, idx, "supplier_name"),
			Origin:       cell(row, idx, "origin"),
			Date:         cell(row, idx, "date"),
		})
	}
	return out, nil
}

func saleRequests(table [][]string) ([]dto.SaleRequest, error) {
	if len(table) == 0 {
		return nil, nil
	}
	idx, err := columnIndex(table[0], saleColumns)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleRequest, 0, len(table)-1)
	for n, row := range table[1:] {
		line := n + 2
		qty, err := strconv.Atoi(cell(row, idx, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("fila %d: quantity: %w", line, err)
		}
		price, err := decimal.NewFromString(cell(row, idx, "unit_price"))
		if err != nil {
			return nil, fmt.Errorf("fila %d: unit_price: %w", line, err)
		}
		transport, err := parseYesNo(cell(row, idx, "transport_required"))
		if err != nil {
			return nil, fmt.Errorf("fila %d: transport_required: %w", line, err)
		}
		out = append(out, dto.SaleRequest{
			ProductName:       cell(row, idx, "product_name"),
			ProductType:       cell(row, idx, "product_type"),
			Quantity:          qty,
			UnitPrice:         price,
			TransportRequired: transport,
			CustomerName:      cell(row, idx, "customer_name"),
			SalesAgent:        cell(row, idx, "sales_agent"),
			PaymentType:       cell(row, idx, "payment_type"),
			Date:              cell(row, idx, "date"),
		})
	}
	return out, nil
}

// parseYesNo acepta true/false, 1/0, yes/no y si/no.
func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "no", "n":
		return false, nil
	case "yes", "y", "si", "sí":
		return true, nil
	}
	return strconv.ParseBool(s)
}
