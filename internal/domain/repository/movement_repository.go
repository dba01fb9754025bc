package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos. Fechas inclusivas sobre movement_date.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	Type        string
	From        *time.Time
	To          *time.Time
	Limit       int // 0 = sin límite
	Offset      int
}

// MovementRepository define el puerto de persistencia para movimientos (append-only).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByIdempotencyKey devuelve nil, nil si no existe un movimiento con esa llave.
	GetByIdempotencyKey(ctx context.Context, companyID, key string) (*entity.Movement, error)
	// List ordena por movement_date descendente y devuelve además el total sin paginar.
	List(ctx context.Context, companyID string, filter MovementFilter) ([]*entity.Movement, int, error)
}
