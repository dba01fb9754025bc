package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Para el ledger es solo de lectura: aporta nombre, SKU, precios y umbrales de stock.
type Product struct {
	ID                string
	CompanyID         string
	CategoryID        string // vacío si no tiene categoría
	SKU               string // código único por empresa
	Name              string
	Description       string
	CostPrice         decimal.NullDecimal // costo unitario; Valid=false si se desconoce
	SellingPrice      decimal.NullDecimal // precio de venta; Valid=false si se desconoce
	MinimumStockLevel int64
	ReorderPoint      int64
	ReorderQuantity   int64
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
