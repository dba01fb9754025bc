package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "in"
	MovementTypeOUT        = "out"
	MovementTypeADJUSTMENT = "adjustment"
	MovementTypeTRANSFER   = "transfer" // solo la salida de la bodega origen
)

// ValidMovementType indica si t es uno de los tipos soportados.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeTRANSFER:
		return true
	}
	return false
}

// Movement registro inmutable (append-only) de un cambio de stock aceptado.
type Movement struct {
	ID             string
	CompanyID      string
	ProductID      string
	WarehouseID    string
	Type           string
	Quantity       int64               // cantidad tal como se envió (siempre > 0)
	UnitCost       decimal.NullDecimal // opcional
	ReferenceType  string              // ej. purchase_order, sale, count
	ReferenceID    string
	Notes          string
	UserID         string
	IdempotencyKey string // vacío si el cliente no lo envió
	MovementDate   time.Time
	CreatedAt      time.Time
}

// Value devuelve quantity * unit_cost, o cero si no hay costo.
func (m *Movement) Value() decimal.Decimal {
	if !m.UnitCost.Valid {
		return decimal.Zero
	}
	return m.UnitCost.Decimal.Mul(decimal.NewFromInt(m.Quantity))
}
