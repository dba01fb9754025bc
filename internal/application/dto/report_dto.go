package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Dashboard ────────────────────────────────────────────────────────────────

// DashboardSummaryDTO KPIs del dashboard de inventario.
type DashboardSummaryDTO struct {
	TotalProducts       int             `json:"total_products"`
	TotalWarehouses     int             `json:"total_warehouses"`
	LowStockItems       int             `json:"low_stock_items"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	RecentMovements     int             `json:"recent_movements"` // últimos 7 días
}

// TopProductDTO producto con mayor cantidad en mano (sumando bodegas).
type TopProductDTO struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	TotalQuantity int64  `json:"total_quantity"`
}

// MovementActivityDTO movimiento reciente con datos legibles.
type MovementActivityDTO struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	SKU           string    `json:"sku"`
	WarehouseName string    `json:"warehouse_name"`
	Type          string    `json:"movement_type"`
	Quantity      int64     `json:"quantity"`
	UserID        string    `json:"user_id"`
	MovementDate  time.Time `json:"movement_date"`
}

// MovementTrendDTO conteo diario por tipo de movimiento.
type MovementTrendDTO struct {
	Date          string `json:"date"` // YYYY-MM-DD
	Type          string `json:"movement_type"`
	Count         int    `json:"count"`
	TotalQuantity int64  `json:"total_quantity"`
}

// DashboardResponse respuesta de GET /api/reports/dashboard.
type DashboardResponse struct {
	Summary        DashboardSummaryDTO   `json:"summary"`
	TopProducts    []TopProductDTO       `json:"top_products"`
	RecentActivity []MovementActivityDTO `json:"recent_activity"`
	MovementTrends []MovementTrendDTO    `json:"movement_trends"`
	GeneratedAt    time.Time             `json:"generated_at"`
}

// ── Resumen de inventario ────────────────────────────────────────────────────

// InventoryTotalsDTO totales del resumen de inventario.
type InventoryTotalsDTO struct {
	TotalItems        int             `json:"total_items"`
	TotalQuantity     int64           `json:"total_quantity"`
	TotalCostValue    decimal.Decimal `json:"total_cost_value"`
	TotalSellingValue decimal.Decimal `json:"total_selling_value"`
	PotentialProfit   decimal.Decimal `json:"potential_profit"`
}

// GroupTotalsDTO agregado por categoría o por bodega.
type GroupTotalsDTO struct {
	ID                string          `json:"id,omitempty"`
	Name              string          `json:"name"`
	Items             int             `json:"items"`
	TotalQuantity     int64           `json:"total_quantity"`
	TotalCostValue    decimal.Decimal `json:"total_cost_value"`
	TotalSellingValue decimal.Decimal `json:"total_selling_value"`
}

// InventoryItemDTO fila detallada del resumen de inventario.
type InventoryItemDTO struct {
	ProductID         string              `json:"product_id"`
	ProductName       string              `json:"product_name"`
	SKU               string              `json:"sku"`
	Category          string              `json:"category"`
	WarehouseID       string              `json:"warehouse_id"`
	Warehouse         string              `json:"warehouse"`
	QuantityOnHand    int64               `json:"quantity_on_hand"`
	QuantityReserved  int64               `json:"quantity_reserved"`
	QuantityAvailable int64               `json:"quantity_available"`
	CostPrice         decimal.NullDecimal `json:"cost_price"`
	SellingPrice      decimal.NullDecimal `json:"selling_price"`
	TotalCostValue    decimal.Decimal     `json:"total_cost_value"`
	TotalSellingValue decimal.Decimal     `json:"total_selling_value"`
}

// InventorySummaryResponse respuesta de GET /api/reports/inventory-summary.
type InventorySummaryResponse struct {
	Summary       InventoryTotalsDTO `json:"summary"`
	ByCategory    []GroupTotalsDTO   `json:"by_category"`
	ByWarehouse   []GroupTotalsDTO   `json:"by_warehouse"`
	DetailedItems []InventoryItemDTO `json:"detailed_items"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// ── Stock bajo ───────────────────────────────────────────────────────────────

// LowStockSummaryDTO conteos del reporte de stock bajo.
type LowStockSummaryDTO struct {
	ThresholdPercentage int `json:"threshold_percentage"`
	TotalLowStockItems  int `json:"total_low_stock_items"`
	CriticalItems       int `json:"critical_items"`
	WarningItems        int `json:"warning_items"`
}

// LowStockItemDTO fila del reporte de stock bajo.
type LowStockItemDTO struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	SKU               string          `json:"sku"`
	Category          string          `json:"category"`
	WarehouseID       string          `json:"warehouse_id"`
	Warehouse         string          `json:"warehouse"`
	QuantityOnHand    int64           `json:"quantity_on_hand"`
	QuantityAvailable int64           `json:"quantity_available"`
	MinimumStockLevel int64           `json:"minimum_stock_level"`
	ReorderPoint      int64           `json:"reorder_point"`
	ReorderQuantity   int64           `json:"reorder_quantity"`
	StockRatio        decimal.Decimal `json:"stock_ratio"` // on_hand / mínimo; 0 si mínimo = 0
	Criticality       string          `json:"criticality"` // critical | warning
}

// LowStockResponse respuesta de GET /api/reports/low-stock.
type LowStockResponse struct {
	Summary       LowStockSummaryDTO `json:"summary"`
	LowStockItems []LowStockItemDTO  `json:"low_stock_items"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// ── Análisis de movimientos ──────────────────────────────────────────────────

// DateRangeDTO ventana efectiva del análisis.
type DateRangeDTO struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// MovementTypeSummaryDTO agregado por tipo de movimiento.
type MovementTypeSummaryDTO struct {
	Count         int             `json:"count"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// MovementAnalysisDTO cabecera del análisis.
type MovementAnalysisDTO struct {
	DateRange       DateRangeDTO                      `json:"date_range"`
	TotalMovements  int                               `json:"total_movements"`
	MovementSummary map[string]MovementTypeSummaryDTO `json:"movement_summary"`
}

// ProductMovementDTO producto con más movimientos en la ventana.
type ProductMovementDTO struct {
	ProductID          string `json:"product_id"`
	Name               string `json:"name"`
	SKU                string `json:"sku"`
	MovementCount      int    `json:"movement_count"`
	TotalQuantityMoved int64  `json:"total_quantity_moved"`
}

// MovementAnalysisResponse respuesta de GET /api/reports/movement-analysis.
type MovementAnalysisResponse struct {
	Analysis    MovementAnalysisDTO  `json:"analysis"`
	TopProducts []ProductMovementDTO `json:"top_products"`
	DailyTrends []MovementTrendDTO   `json:"daily_trends"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// ── Valorización ─────────────────────────────────────────────────────────────

// ValuationSummaryDTO totales de la valorización.
type ValuationSummaryDTO struct {
	TotalCostValue         decimal.Decimal `json:"total_cost_value"`
	TotalSellingValue      decimal.Decimal `json:"total_selling_value"`
	TotalPotentialProfit   decimal.Decimal `json:"total_potential_profit"`
	ProfitMarginPercentage decimal.Decimal `json:"profit_margin_percentage"` // 0 si el costo total es 0
	TotalItemsValued       int             `json:"total_items_valued"`
}

// ValuationItemDTO fila valorizada (producto en bodega).
type ValuationItemDTO struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	SKU             string          `json:"sku"`
	Category        string          `json:"category"`
	Warehouse       string          `json:"warehouse"`
	QuantityOnHand  int64           `json:"quantity_on_hand"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	CostValue       decimal.Decimal `json:"cost_value"`
	SellingValue    decimal.Decimal `json:"selling_value"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
}

// ValuationResponse respuesta de GET /api/reports/valuation.
type ValuationResponse struct {
	Summary        ValuationSummaryDTO `json:"summary"`
	TopValuedItems []ValuationItemDTO  `json:"top_valued_items"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// ── Reposición ───────────────────────────────────────────────────────────────

// ReplenishmentSuggestionDTO sugerencia de reposición para un SKU que está
// en o por debajo de su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int64           `json:"current_stock"` // suma de bodegas (o de la bodega filtrada)
	ReorderPoint       int64           `json:"reorder_point"`
	SuggestedOrderQty  int64           `json:"suggested_order_qty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}

// ReplenishmentResponse respuesta de GET /api/reports/replenishment.
type ReplenishmentResponse struct {
	Total          int                          `json:"total"`
	Replenishments []ReplenishmentSuggestionDTO `json:"replenishments"`
}
