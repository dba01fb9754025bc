package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID      string           `json:"product_id"`
	WarehouseID    string           `json:"warehouse_id"`
	Type           string           `json:"movement_type"` // in | out | adjustment | transfer
	Quantity       int64            `json:"quantity"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType  string           `json:"reference_type,omitempty"`
	ReferenceID    string           `json:"reference_id,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	MovementDate   *time.Time       `json:"movement_date,omitempty"`
	IdempotencyKey string           `json:"idempotency_key,omitempty"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID             string              `json:"id"`
	CompanyID      string              `json:"company_id"`
	ProductID      string              `json:"product_id"`
	WarehouseID    string              `json:"warehouse_id"`
	Type           string              `json:"movement_type"`
	Quantity       int64               `json:"quantity"`
	UnitCost       decimal.NullDecimal `json:"unit_cost"`
	ReferenceType  string              `json:"reference_type,omitempty"`
	ReferenceID    string              `json:"reference_id,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	UserID         string              `json:"user_id"`
	IdempotencyKey string              `json:"idempotency_key,omitempty"`
	MovementDate   time.Time           `json:"movement_date"`
	CreatedAt      time.Time           `json:"created_at"`
}

// StockResponse salida de una fila del ledger.
type StockResponse struct {
	ID                string     `json:"id"`
	ProductID         string     `json:"product_id"`
	WarehouseID       string     `json:"warehouse_id"`
	QuantityOnHand    int64      `json:"quantity_on_hand"`
	QuantityReserved  int64      `json:"quantity_reserved"`
	QuantityAvailable int64      `json:"quantity_available"`
	LastMovementAt    *time.Time `json:"last_movement_at"`
	LastCountedAt     *time.Time `json:"last_counted_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// RegisterMovementResponse respuesta de POST /api/inventory/movements.
// Replayed=true cuando la idempotency_key ya existía y no se aplicó nada nuevo.
type RegisterMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	Stock    StockResponse    `json:"stock"`
	Alert    *AlertResponse   `json:"alert,omitempty"`
	Replayed bool             `json:"replayed"`
}

// MovementListResponse historial paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockListResponse listado paginado del ledger.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID         string     `json:"id"`
	AlertType  string     `json:"alert_type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Severity   string     `json:"severity"`
	EntityType string     `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	IsRead     bool       `json:"is_read"`
	UserID     string     `json:"user_id,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AlertListResponse feed paginado de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
