package entity

import "time"

// Severidades de alerta.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Tipos de alerta y de entidad referenciada.
const (
	AlertTypeLowStock = "low_stock"
	EntityTypeProduct = "product"
)

// Alert notificación derivada de un movimiento. Solo IsRead cambia después de creada.
type Alert struct {
	ID         string
	CompanyID  string
	UserID     string // usuario que disparó el movimiento
	AlertType  string
	Title      string
	Message    string
	Severity   string
	EntityType string
	EntityID   string
	IsRead     bool
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}
