// seed importa los libros de stock y ventas desde CSV (UTF-8, Windows-1252 o Latin-1) o XLSX,
// pasando por los mismos casos de uso que la API: cada venta se valida contra el stock.
//
// Uso: go run ./cmd/seed -stock stock.csv -sales ventas.csv [-charset windows-1252]
// El stock se importa antes que las ventas. Con STORAGE_DRIVER=memory solo valida los archivos.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/mayondo-api/internal/application/inventory"
	"github.com/jhoicas/mayondo-api/internal/application/ports"
	"github.com/jhoicas/mayondo-api/internal/application/sales"
	domaininv "github.com/jhoicas/mayondo-api/internal/domain/inventory"
	"github.com/jhoicas/mayondo-api/internal/infrastructure/memory"
	"github.com/jhoicas/mayondo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/mayondo-api/pkg/config"
	"github.com/jhoicas/mayondo-api/pkg/logger"
)

func main() {
	stockPath := flag.String("stock", "", "CSV/XLSX de ingresos de stock")
	salesPath := flag.String("sales", "", "CSV/XLSX de ventas")
	charset := flag.String("charset", "utf-8", "charset de los CSV: utf-8, windows-1252, iso-8859-1")
	flag.Parse()

	if *stockPath == "" && *salesPath == "" {
		fmt.Fprintln(os.Stderr, "uso: seed -stock stock.csv -sales ventas.csv [-charset windows-1252]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	policy, err := domaininv.ParseOrphanPolicy(cfg.Sales.OrphanPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("política de ventas huérfanas")
	}

	ctx := context.Background()
	var (
		stockUC *inventory.StockUseCase
		saleUC  *sales.SaleUseCase
	)
	opts := sales.Options{DecrementStock: cfg.Sales.DecrementStock, OrphanPolicy: policy}
	if cfg.Storage.Driver == config.StorageMemory {
		store := memory.New()
		stockUC = inventory.NewStockUseCase(store.StockRepository(), ports.NopNotifier{}, ports.NopObserver{}, log.Component("seed"))
		saleUC = sales.NewSaleUseCase(store, store.SaleRepository(), ports.NopNotifier{}, ports.NopObserver{}, opts, log.Component("seed"))
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración")
		}
		stockUC = inventory.NewStockUseCase(postgres.NewStockRepository(pool), ports.NopNotifier{}, ports.NopObserver{}, log.Component("seed"))
		saleUC = sales.NewSaleUseCase(postgres.NewTxRunner(pool), postgres.NewSaleRepository(pool),
			ports.NopNotifier{}, ports.NopObserver{}, opts, log.Component("seed"))
	}

	if *stockPath != "" {
		table, err := readTable(*stockPath, *charset)
		if err != nil {
			log.Fatal().Err(err).Str("file", *stockPath).Msg("leer stock")
		}
		reqs, err := stockRequests(table)
		if err != nil {
			log.Fatal().Err(err).Str("file", *stockPath).Msg("interpretar stock")
		}
		ok := 0
		for i, in := range reqs {
			if _, err := stockUC.Create(ctx, in); err != nil {
				log.Error().Err(err).Int("row", i+2).Msg("stock rechazado")
				continue
			}
			ok++
		}
		log.Info().Int("imported", ok).Int("rows", len(reqs)).Msg("stock importado")
	}

	if *salesPath != "" {
		table, err := readTable(*salesPath, *charset)
		if err != nil {
			log.Fatal().Err(err).Str("file", *salesPath).Msg("leer ventas")
		}
		reqs, err := saleRequests(table)
		if err != nil {
			log.Fatal().Err(err).Str("file", *salesPath).Msg("interpretar ventas")
		}
		ok := 0
		for i, in := range reqs {
			if _, err := saleUC.RecordSale(ctx, in); err != nil {
				log.Error().Err(err).Int("row", i+2).Msg("venta rechazada")
				continue
			}
			ok++
		}
		log.Info().Int("imported", ok).Int("rows", len(reqs)).Msg("ventas importadas")
	}
}
