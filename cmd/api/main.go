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

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventory-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/inventory-ledger/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/inventory-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventory-ledger/pkg/config"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// backend puertos de persistencia según DB_DRIVER.
type backend struct {
	tx         inventory.TxRunner
	snap       analytics.SnapshotRunner
	products   repository.ProductRepository
	categories repository.CategoryRepository
	warehouses repository.WarehouseRepository
	stock      repository.StockRepository
	movements  repository.MovementRepository
	alerts     repository.AlertRepository
	reports    repository.ReportRepository
	health     func(ctx context.Context) error
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer be.close()

	registerMovementUC := inventory.NewRegisterMovementUseCase(be.tx, be.products, be.warehouses, inventory.Options{
		DedupLowStockAlerts:  cfg.Ledger.DedupLowStockAlerts,
		EnforceReservedBound: cfg.Ledger.EnforceReservedBound,
		AlertTTL:             cfg.Ledger.AlertTTL(),
	}, log.Component("movements"))
	reportUC := analytics.NewReportUseCase(be.snap)
	exportUC := analytics.NewExportUseCase(reportUC, infrapdf.NewValuationPDFGenerator(), infraxlsx.NewInventorySummaryExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // exportaciones PDF/XLSX
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventory Ledger API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        usecase.NewProductUseCase(be.products, be.categories),
		WarehouseUC:      usecase.NewWarehouseUseCase(be.warehouses),
		RegisterMovement: registerMovementUC,
		Queries:          inventory.NewQueryUseCase(be.stock, be.movements),
		Alerts:           inventory.NewAlertUseCase(be.alerts),
		Replenishment:    inventory.NewReplenishmentUseCase(be.reports),
		Reports:          reportUC,
		Exports:          exportUC,
		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
		Health:           be.health,
		Log:              log.Component("http"),
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

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.New()
		return &backend{
			tx:         store,
			snap:       store,
			products:   store.Products(),
			categories: store.Categories(),
			warehouses: store.Warehouses(),
			stock:      store.Stock(),
			movements:  store.Movements(),
			alerts:     store.Alerts(),
			reports:    store.Reports(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			pool.Close()
			return nil, err
		}
	}
	txRunner := postgres.NewTxRunner(pool)
	return &backend{
		tx:         txRunner,
		snap:       txRunner,
		products:   postgres.NewProductRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		warehouses: postgres.NewWarehouseRepository(pool),
		stock:      postgres.NewStockRepository(pool),
		movements:  postgres.NewMovementRepository(pool),
		alerts:     postgres.NewAlertRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		health:     pool.Ping,
		close:      pool.Close,
	}, nil
}
