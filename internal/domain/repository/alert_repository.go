package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// AlertFilter filtros del feed de alertas.
type AlertFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

// AlertRepository define el puerto de persistencia para alertas.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	List(ctx context.Context, companyID string, filter AlertFilter) ([]*entity.Alert, int, error)
	// MarkRead devuelve domain.ErrNotFound si la alerta no pertenece a la empresa.
	MarkRead(ctx context.Context, companyID, id string) (*entity.Alert, error)
}
