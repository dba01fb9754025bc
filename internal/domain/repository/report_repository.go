package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// PositionFilter filtros para las posiciones de stock usadas por los reportes.
type PositionFilter struct {
	WarehouseID string
	CategoryID  string
}

// StockPosition fila del ledger unida con los datos de producto, categoría y bodega.
// La produce la DB; los casos de uso de reportes la agregan.
type StockPosition struct {
	Entry             entity.StockEntry
	ProductName       string
	SKU               string
	CategoryID        string // vacío si el producto no tiene categoría
	CategoryName      string
	WarehouseName     string
	CostPrice         decimal.NullDecimal
	SellingPrice      decimal.NullDecimal
	MinimumStockLevel int64
	ReorderPoint      int64
	ReorderQuantity   int64
	ProductActive     bool
}

// MovementRow movimiento con nombre y SKU del producto y nombre de bodega.
type MovementRow struct {
	Movement      entity.Movement
	ProductName   string
	SKU           string
	WarehouseName string
}

// ReportRepository consultas de solo lectura para el agregador de reportes.
// Las implementaciones no modifican datos.
type ReportRepository interface {
	CountActiveProducts(ctx context.Context, companyID string) (int, error)
	CountActiveWarehouses(ctx context.Context, companyID string) (int, error)
	StockPositions(ctx context.Context, companyID string, filter PositionFilter) ([]StockPosition, error)
	// MovementRows ordena por movement_date descendente. Offset se ignora; Limit 0 = todo.
	MovementRows(ctx context.Context, companyID string, filter MovementFilter) ([]MovementRow, error)
}
