package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestStockRequests_DesdeCSVWindows1252(t *testing.T) {
	raw := "product_name,product_type,quantity,unit_cost,supplier_name,origin,date\n" +
		"Chaise longue,Wood,3,450.50,Tallerès Mukono,Central,2026-01-15\n"
	encoded, err := charmap.Windows1252.NewEncoder().String(raw)
	require.NoError(t, err)

	r, err := decoderFor("windows-1252", bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	table, err := parseCSV(r)
	require.NoError(t, err)

	reqs, err := stockRequests(table)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Tallerès Mukono", reqs[0].SupplierName)
	assert.Equal(t, 3, reqs[0].Quantity)
	assert.True(t, reqs[0].UnitCost.Equal(decimal.RequireFromString("450.50")))
	assert.Equal(t, "2026-01-15", reqs[0].Date)
}

func TestSaleRequests_TransporteYColumnasEnCualquierOrden(t *testing.T) {
	table := [][]string{
		{"Customer_Name", "product_name", "product_type", "quantity", "unit_price", "transport_required", "sales_agent", "payment_type", "date"},
		{"Acme Hotels", "Chair", "Wood", "2", "150", "yes", "jnakato", "Cash", ""},
		{"Beta Ltd", "Table", "Metal", "1", "99.99", "0", "okello", "Cheque", "2026-02-01"},
	}
	reqs, err := saleRequests(table)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.True(t, reqs[0].TransportRequired)
	assert.Equal(t, "Acme Hotels", reqs[0].CustomerName)
	assert.False(t, reqs[1].TransportRequired)
	assert.True(t, reqs[1].UnitPrice.Equal(decimal.RequireFromString("99.99")))
}

func TestSaleRequests_ColumnaFaltante(t *testing.T) {
	_, err := saleRequests([][]string{{"product_name", "product_type"}})
	assert.Error(t, err)
}

func TestStockRequests_CantidadInvalidaIndicaFila(t *testing.T) {
	table := [][]string{
		stockColumns,
		{"Chair", "Wood", "tres", "100", "X", "Central", ""},
	}
	_, err := stockRequests(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 2")
}

func TestDecoderFor_CharsetDesconocido(t *testing.T) {
	_, err := decoderFor("ebcdic", io.MultiReader())
	assert.Error(t, err)
}
