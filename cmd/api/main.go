package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/mayondo-api/internal/application/analytics"
	"github.com/jhoicas/mayondo-api/internal/application/inventory"
	"github.com/jhoicas/mayondo-api/internal/application/notification"
	"github.com/jhoicas/mayondo-api/internal/application/party"
	"github.com/jhoicas/mayondo-api/internal/application/report"
	"github.com/jhoicas/mayondo-api/internal/application/sales"
	"github.com/jhoicas/mayondo-api/internal/application/search"
	domaininv "github.com/jhoicas/mayondo-api/internal/domain/inventory"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
	"github.com/jhoicas/mayondo-api/internal/infrastructure/cache"
	"github.com/jhoicas/mayondo-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/mayondo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/mayondo-api/internal/infrastructure/postgres"
	infrareport "github.com/jhoicas/mayondo-api/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/mayondo-api/internal/interfaces/http"
	"github.com/jhoicas/mayondo-api/internal/scheduler"
	"github.com/jhoicas/mayondo-api/pkg/config"
	"github.com/jhoicas/mayondo-api/pkg/logger"
)

// ledgers repositorios del backend elegido por STORAGE_DRIVER.
type ledgers struct {
	stock         repository.StockRepository
	sales         repository.SaleRepository
	customers     repository.CustomerRepository
	suppliers     repository.SupplierRepository
	notifications repository.NotificationRepository
	txRunner      sales.TxRunner
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openLedgers(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	policy, err := domaininv.ParseOrphanPolicy(cfg.Sales.OrphanPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("política de ventas huérfanas")
	}

	// Caché del dashboard: Redis si está configurado y responde; si no, no-op.
	dashboardCache := appanalytics.DashboardCache(cache.NoopDashboardCache{})
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisDashboardCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, dashboard sin caché")
			_ = redisCache.Close()
		} else {
			dashboardCache = redisCache
			defer redisCache.Close()
		}
		cancel()
	}

	notificationUC := notification.NewUseCase(store.notifications, log.Component("notification"))
	dashboardUC := appanalytics.NewDashboardUseCase(
		store.stock, store.sales, dashboardCache,
		time.Duration(cfg.Dashboard.CacheTTLSeconds)*time.Second, policy, log.Component("dashboard"),
	)
	profitUC := appanalytics.NewProfitUseCase(store.stock, store.sales, policy)
	profitWatch := appanalytics.NewProfitWatch(profitUC, notificationUC, log.Component("profit-watch"))

	stockUC := inventory.NewStockUseCase(store.stock, notificationUC, dashboardUC, log.Component("stock"))
	saleUC := sales.NewSaleUseCase(store.txRunner, store.sales, notificationUC, dashboardUC, sales.Options{
		DecrementStock: cfg.Sales.DecrementStock,
		OrphanPolicy:   policy,
	}, log.Component("sales"))
	receiptUC := sales.NewReceiptUseCase(store.sales, infrapdf.NewMarotoPDFGenerator(cfg.App.BusinessName))
	reportUC := report.NewUseCase(store.stock, store.sales, infrareport.NewXLSXExporter(), policy)

	if !cfg.Sales.DecrementStock {
		log.Warn().Msg("SALES_DECREMENT_STOCK=false: las ventas no descuentan existencias")
	}

	watch := scheduler.New(cfg.Scheduler.WatchCron, dashboardUC, profitWatch, log.Component("scheduler"))
	if err := watch.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}
	defer watch.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mayondo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:        stockUC,
		AvailabilityUC: inventory.NewAvailabilityUseCase(store.stock),
		CostUC:         inventory.NewCostUseCase(store.stock),
		SaleUC:         saleUC,
		ReceiptUC:      receiptUC,
		DashboardUC:    dashboardUC,
		ProfitUC:       profitUC,
		ReportUC:       reportUC,
		SearchUC:       search.NewUseCase(store.stock, store.sales),
		NotificationUC: notificationUC,
		CustomerUC:     party.NewCustomerUseCase(store.customers),
		SupplierUC:     party.NewSupplierUseCase(store.suppliers),
		JWTSecret:      cfg.JWT.Secret,
		JWTIssuer:      cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openLedgers conecta PostgreSQL (y migra si está habilitado) o crea el store en memoria.
func openLedgers(ctx context.Context, cfg *config.Config, log *logger.Logger) (*ledgers, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.New()
		return &ledgers{
			stock:         store.StockRepository(),
			sales:         store.SaleRepository(),
			customers:     store.CustomerRepository(),
			suppliers:     store.SupplierRepository(),
			notifications: store.NotificationRepository(),
			txRunner:      store,
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &ledgers{
		stock:         postgres.NewStockRepository(pool),
		sales:         postgres.NewSaleRepository(pool),
		customers:     postgres.NewCustomerRepository(pool),
		suppliers:     postgres.NewSupplierRepository(pool),
		notifications: postgres.NewNotificationRepository(pool),
		txRunner:      postgres.NewTxRunner(pool),
		close:         pool.Close,
	}, nil
}
