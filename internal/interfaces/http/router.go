package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/mayondo-api/internal/application/analytics"
	"github.com/jhoicas/mayondo-api/internal/application/inventory"
	"github.com/jhoicas/mayondo-api/internal/application/notification"
	"github.com/jhoicas/mayondo-api/internal/application/party"
	"github.com/jhoicas/mayondo-api/internal/application/report"
	"github.com/jhoicas/mayondo-api/internal/application/sales"
	"github.com/jhoicas/mayondo-api/internal/application/search"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC        *inventory.StockUseCase
	AvailabilityUC *inventory.AvailabilityUseCase
	CostUC         *inventory.CostUseCase
	SaleUC         *sales.SaleUseCase
	ReceiptUC      *sales.ReceiptUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	ProfitUC       *appanalytics.ProfitUseCase
	ReportUC       *report.UseCase
	SearchUC       *search.UseCase
	NotificationUC *notification.UseCase
	CustomerUC     *party.CustomerUseCase
	SupplierUC     *party.SupplierUseCase
	JWTSecret      string
	JWTIssuer      string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; los tokens los emite
// el proveedor de identidad externo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	anyRole := RequireRole(entity.RoleManager, entity.RoleEmployee)
	managerOnly := RequireRole(entity.RoleManager)

	// Stock
	stock := api.Group("/stock", anyRole)
	stockHandler := NewStockHandler(deps.StockUC, deps.AvailabilityUC, deps.CostUC)
	stock.Get("/levels", stockHandler.Levels)
	stock.Get("/availability", stockHandler.Availability)
	stock.Get("/cost", stockHandler.Cost)
	stock.Post("/", stockHandler.Create)
	stock.Get("/", stockHandler.List)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Put("/:id", stockHandler.Update)
	stock.Delete("/:id", stockHandler.Delete)

	// Ventas
	salesGroup := api.Group("/sales", anyRole)
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Get("/:id/receipt.pdf", saleHandler.ReceiptPDF)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", anyRole, dashboardHandler.GetSummary)

	// Reportes (solo gerentes)
	reports := api.Group("/reports", managerOnly)
	reportHandler := NewReportHandler(deps.ProfitUC, deps.ReportUC)
	reports.Get("/profit", reportHandler.Profit)
	reports.Get("/sales.xlsx", reportHandler.SalesXLSX)
	reports.Get("/stock.xlsx", reportHandler.StockXLSX)

	// Búsqueda
	searchHandler := NewSearchHandler(deps.SearchUC)
	api.Get("/search", anyRole, searchHandler.Search)

	// Notificaciones del rol autenticado
	notifications := api.Group("/notifications", anyRole)
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.ListUnread)
	notifications.Get("/activity", notificationHandler.Activity)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	// Clientes y proveedores
	partyHandler := NewPartyHandler(deps.CustomerUC, deps.SupplierUC)
	customers := api.Group("/customers", anyRole)
	customers.Post("/", partyHandler.CreateCustomer)
	customers.Get("/", partyHandler.ListCustomers)
	suppliers := api.Group("/suppliers", anyRole)
	suppliers.Post("/", partyHandler.CreateSupplier)
	suppliers.Get("/", partyHandler.ListSuppliers)
}
