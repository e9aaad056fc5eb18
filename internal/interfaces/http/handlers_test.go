package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/mayondo-api/internal/application/analytics"
	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/application/inventory"
	"github.com/jhoicas/mayondo-api/internal/application/notification"
	"github.com/jhoicas/mayondo-api/internal/application/party"
	"github.com/jhoicas/mayondo-api/internal/application/report"
	"github.com/jhoicas/mayondo-api/internal/application/sales"
	"github.com/jhoicas/mayondo-api/internal/application/search"
	domaininv "github.com/jhoicas/mayondo-api/internal/domain/inventory"
	"github.com/jhoicas/mayondo-api/internal/infrastructure/cache"
	"github.com/jhoicas/mayondo-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/mayondo-api/internal/infrastructure/pdf"
	infrareport "github.com/jhoicas/mayondo-api/internal/infrastructure/report"
	apphttp "github.com/jhoicas/mayondo-api/internal/interfaces/http"
)

// newTestServer arma la API completa sobre el store en memoria.
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	log := zerolog.Nop()
	store := memory.New()
	stockRepo := store.StockRepository()
	saleRepo := store.SaleRepository()

	notifier := notification.NewUseCase(store.NotificationRepository(), log)
	policy := domaininv.OrphanZeroCost
	dashboardUC := appanalytics.NewDashboardUseCase(stockRepo, saleRepo, cache.NoopDashboardCache{}, time.Minute, policy, log)
	profitUC := appanalytics.NewProfitUseCase(stockRepo, saleRepo, policy)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		StockUC:        inventory.NewStockUseCase(stockRepo, notifier, dashboardUC, log),
		AvailabilityUC: inventory.NewAvailabilityUseCase(stockRepo),
		CostUC:         inventory.NewCostUseCase(stockRepo),
		SaleUC: sales.NewSaleUseCase(store, saleRepo, notifier, dashboardUC,
			sales.Options{DecrementStock: true, OrphanPolicy: policy}, log),
		ReceiptUC:      sales.NewReceiptUseCase(saleRepo, infrapdf.NewMarotoPDFGenerator("")),
		DashboardUC:    dashboardUC,
		ProfitUC:       profitUC,
		ReportUC:       report.NewUseCase(stockRepo, saleRepo, infrareport.NewXLSXExporter(), policy),
		SearchUC:       search.NewUseCase(stockRepo, saleRepo),
		NotificationUC: notifier,
		CustomerUC:     party.NewCustomerUseCase(store.CustomerRepository()),
		SupplierUC:     party.NewSupplierUseCase(store.SupplierRepository()),
		JWTSecret:      testJWTSecret,
		JWTIssuer:      testIssuer,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role string, body interface{}) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func stockBody(name, productType string, qty int, cost string) dto.StockRequest {
	return dto.StockRequest{
		ProductName:  name,
		ProductType:  productType,
		Quantity:     qty,
		UnitCost:     decimal.RequireFromString(cost),
		SupplierName: "Kampala Timber",
		Origin:       "Central",
	}
}

func saleBody(name, productType string, qty int, price string, transport bool) dto.SaleRequest {
	return dto.SaleRequest{
		ProductName:       name,
		ProductType:       productType,
		Quantity:          qty,
		UnitPrice:         decimal.RequireFromString(price),
		TransportRequired: transport,
		CustomerName:      "Acme Hotels",
		PaymentType:       "Cash",
	}
}

func TestAPI_RequiereToken(t *testing.T) {
	app := newTestServer(t)
	resp := call(t, app, http.MethodGet, "/api/stock", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_FlujoStockVentaUtilidad(t *testing.T) {
	app := newTestServer(t)

	resp := call(t, app, http.MethodPost, "/api/stock", "employee", stockBody("Chair", "Wood", 5, "100"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var entry dto.StockEntryResponse
	decode(t, resp, &entry)
	assert.NotEmpty(t, entry.Code)
	assert.True(t, entry.TotalCost.Equal(decimal.NewFromInt(500)))

	resp = call(t, app, http.MethodPost, "/api/sales", "employee", saleBody("Chair", "Wood", 2, "150", true))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale dto.SaleResponse
	decode(t, resp, &sale)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(315)), "2×150 + 5%% = 315, got %s", sale.TotalAmount)
	assert.Equal(t, testUsername, sale.SalesAgent, "sin agente se usa el usuario del token")

	// Existencias descontadas
	resp = call(t, app, http.MethodGet, "/api/stock/levels", "employee", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var levels map[string]int
	decode(t, resp, &levels)
	assert.Equal(t, 3, levels["Chair-Wood"])

	// Utilidad: 315 - 2×100 = 115
	resp = call(t, app, http.MethodGet, "/api/reports/profit", "manager", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profit dto.ProfitReportDTO
	decode(t, resp, &profit)
	assert.True(t, profit.Revenue.Equal(decimal.NewFromInt(315)))
	assert.True(t, profit.Cost.Equal(decimal.NewFromInt(200)))
	assert.True(t, profit.Profit.Equal(decimal.NewFromInt(115)))
	assert.Equal(t, 1, profit.SalesCount)

	// Recibo
	resp = call(t, app, http.MethodGet, "/api/sales/"+sale.ID+"/receipt", "employee", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var receipt dto.ReceiptDTO
	decode(t, resp, &receipt)
	assert.Equal(t, "MWF-000001", receipt.ReceiptNumber)
	assert.True(t, receipt.Subtotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, receipt.TransportFee.Equal(decimal.NewFromInt(15)))

	resp = call(t, app, http.MethodGet, "/api/sales/"+sale.ID+"/receipt.pdf", "employee", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestAPI_VentaSinExistencias_Retorna409ConFaltante(t *testing.T) {
	app := newTestServer(t)
	resp := call(t, app, http.MethodPost, "/api/stock", "manager", stockBody("Table", "Metal", 2, "80"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/sales", "employee", saleBody("Table", "Metal", 3, "120", false))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var body dto.InsufficientStockResponse
	decode(t, resp, &body)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, 3, body.Requested)
	assert.Equal(t, 2, body.Available)
	assert.Equal(t, 1, body.Shortfall)
}

func TestAPI_Disponibilidad_IdentidadDesconocida(t *testing.T) {
	app := newTestServer(t)
	resp := call(t, app, http.MethodGet, "/api/stock/availability?product_name=Sofa&product_type=Leather&quantity=1", "employee", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AvailabilityResponse
	decode(t, resp, &out)
	assert.False(t, out.Available)
	assert.Equal(t, 0, out.MaxQuantity)
}

func TestAPI_CostoPromedio(t *testing.T) {
	app := newTestServer(t)
	for _, cost := range []string{"100", "200"} {
		resp := call(t, app, http.MethodPost, "/api/stock", "manager", stockBody("Bed", "Wood", 1, cost))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	resp := call(t, app, http.MethodGet, "/api/stock/cost?product_name=Bed&product_type=Wood", "employee", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.UnitCostResponse
	decode(t, resp, &out)
	assert.True(t, out.Resolved)
	assert.True(t, out.UnitCost.Equal(decimal.NewFromInt(150)))
}

func TestAPI_ReportesSoloGerentes(t *testing.T) {
	app := newTestServer(t)
	for _, path := range []string{"/api/reports/profit", "/api/reports/sales.xlsx", "/api/reports/stock.xlsx"} {
		resp := call(t, app, http.MethodGet, path, "employee", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		resp.Body.Close()
	}

	resp := call(t, app, http.MethodGet, "/api/reports/stock.xlsx", "manager", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
}

func TestAPI_RangoInvalido_Retorna400(t *testing.T) {
	app := newTestServer(t)
	resp := call(t, app, http.MethodGet, "/api/reports/profit?from=2026-02-10&to=2026-02-01", "manager", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_IDMalFormado_Retorna404(t *testing.T) {
	app := newTestServer(t)
	resp := call(t, app, http.MethodGet, "/api/sales/no-es-uuid", "employee", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_NotificacionesPorRol(t *testing.T) {
	app := newTestServer(t)
	resp := call(t, app, http.MethodPost, "/api/stock", "employee", stockBody("Shelf", "Wood", 1, "40"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// La venta agota la identidad: aviso a todos los roles.
	resp = call(t, app, http.MethodPost, "/api/sales", "employee", saleBody("Shelf", "Wood", 1, "60", false))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var managerFeed struct {
		Total         int                        `json:"total"`
		Notifications []dto.NotificationResponse `json:"notifications"`
	}
	resp = call(t, app, http.MethodGet, "/api/notifications", "manager", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &managerFeed)
	assert.Equal(t, 3, managerFeed.Total, "stock + venta + sin existencias")

	var employeeFeed struct {
		Total int `json:"total"`
	}
	resp = call(t, app, http.MethodGet, "/api/notifications", "employee", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &employeeFeed)
	assert.Equal(t, 1, employeeFeed.Total, "solo el aviso de sin existencias")

	resp = call(t, app, http.MethodPost, "/api/notifications/read-all", "manager", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var marked dto.MarkAllReadResponse
	decode(t, resp, &marked)
	assert.Equal(t, 3, marked.Updated)
}

func TestAPI_FeedDeActividadIncluyeLeidas(t *testing.T) {
	app := newTestServer(t)
	for i := 0; i < 12; i++ {
		resp := call(t, app, http.MethodPost, "/api/stock", "employee", stockBody(fmt.Sprintf("Stool %02d", i), "Wood", 2, "15"))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	resp := call(t, app, http.MethodPost, "/api/notifications/read-all", "manager", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var feed struct {
		Activities []dto.NotificationResponse `json:"activities"`
	}
	resp = call(t, app, http.MethodGet, "/api/notifications/activity", "manager", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &feed)
	require.Len(t, feed.Activities, 10)
	assert.True(t, feed.Activities[0].IsRead)
	assert.Contains(t, feed.Activities[0].Message, "Stool 11")

	var employeeFeed struct {
		Activities []dto.NotificationResponse `json:"activities"`
	}
	resp = call(t, app, http.MethodGet, "/api/notifications/activity", "employee", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &employeeFeed)
	assert.Empty(t, employeeFeed.Activities)
}

func TestAPI_ClientesNombreUnico(t *testing.T) {
	app := newTestServer(t)
	in := dto.CustomerRequest{Name: "Acme Hotels", Phone: "+256700000000"}
	resp := call(t, app, http.MethodPost, "/api/customers", "employee", in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/customers", "employee", in)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_Busqueda(t *testing.T) {
	app := newTestServer(t)
	resp := call(t, app, http.MethodPost, "/api/stock", "employee", stockBody("Dining Table", "Wood", 4, "90"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/search?q=dining", "employee", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.SearchResponse
	decode(t, resp, &out)
	assert.Len(t, out.Stock, 1)
	assert.Empty(t, out.Sales)
}
