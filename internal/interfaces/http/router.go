package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	WarehouseUC      *usecase.WarehouseUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Queries          *inventory.QueryUseCase
	Alerts           *inventory.AlertUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	Reports          *analytics.ReportUseCase
	Exports          *analytics.ExportUseCase
	JWTSecret        string
	JWTIssuer        string
	Health           func(ctx context.Context) error // nil = siempre sano
	Log              zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.Context()); err != nil {
				deps.Log.Warn().Err(err).Msg("health check falló")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "base de datos no disponible"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddlewareWithIssuer(deps.JWTSecret, deps.JWTIssuer))
	onlyAdmin := RequireRole(jwt.RoleAdmin)
	stockWriters := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", onlyAdmin, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", onlyAdmin, productHandler.Update)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.Log)
	warehouses.Post("/", onlyAdmin, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)

	// Inventory: ledger y movimientos
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Queries, deps.Log)
	invGroup.Get("/", inventoryHandler.ListStock)
	invGroup.Post("/movements", stockWriters, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Alerts
	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.Alerts, deps.Log)
	alerts.Get("/", alertHandler.List)
	alerts.Put("/:id/read", alertHandler.MarkRead)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports, deps.Exports, deps.Replenishment, deps.Log)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/inventory-summary", reportHandler.InventorySummary)
	reports.Get("/inventory-summary.xlsx", reportHandler.InventorySummaryXLSX)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/movement-analysis", reportHandler.MovementAnalysis)
	reports.Get("/valuation", reportHandler.Valuation)
	reports.Get("/valuation.pdf", reportHandler.ValuationPDF)
	reports.Get("/replenishment", reportHandler.Replenishment)
}
