package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `m.id, m.company_id, m.product_id, m.warehouse_id, m.movement_type, m.quantity, m.unit_cost,
	m.reference_type, m.reference_id, m.notes, m.user_id, m.idempotency_key, m.movement_date, m.created_at`

// MovementRepo historial append-only sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func scanMovement(row pgx.Row, extra ...any) (*entity.Movement, error) {
	var m entity.Movement
	dest := []any{
		&m.ID, &m.CompanyID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Quantity, &m.UnitCost,
		&m.ReferenceType, &m.ReferenceID, &m.Notes, &m.UserID, &m.IdempotencyKey, &m.MovementDate, &m.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un movimiento. Una idempotency key repetida viola el índice único
// parcial y se devuelve como domain.ErrConflict.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (id, company_id, product_id, warehouse_id, movement_type, quantity, unit_cost,
			reference_type, reference_id, notes, user_id, idempotency_key, movement_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.ID, m.CompanyID, m.ProductID, m.WarehouseID, m.Type, m.Quantity, m.UnitCost,
		m.ReferenceType, m.ReferenceID, m.Notes, m.UserID, m.IdempotencyKey, m.MovementDate, m.CreatedAt,
	)
	if err != nil {
		return mapError("create inventory movement", err)
	}
	return nil
}

// GetByIdempotencyKey devuelve nil, nil si no existe un movimiento con esa llave.
func (r *MovementRepo) GetByIdempotencyKey(ctx context.Context, companyID, key string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `
		SELECT `+movementColumns+`
		FROM inventory_movements m
		WHERE m.company_id = $1 AND m.idempotency_key = $2`,
		companyID, key,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get movement by idempotency key", err)
	}
	return m, nil
}

// movementWhere traduce el filtro a condiciones sobre el alias m.
func movementWhere(companyID string, f repository.MovementFilter) *whereBuilder {
	w := newWhere("m.company_id = ?", companyID)
	if f.ProductID != "" {
		w.add("m.product_id = ?", f.ProductID)
	}
	if f.WarehouseID != "" {
		w.add("m.warehouse_id = ?", f.WarehouseID)
	}
	if f.Type != "" {
		w.add("m.movement_type = ?", f.Type)
	}
	if f.From != nil {
		w.add("m.movement_date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("m.movement_date <= ?", *f.To)
	}
	return w
}

// List ordena por movement_date descendente y devuelve además el total sin paginar.
func (r *MovementRepo) List(ctx context.Context, companyID string, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	w := movementWhere(companyID, f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_movements m`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapError("count movements", err)
	}

	query := `SELECT ` + movementColumns + ` FROM inventory_movements m` + w.sql() +
		` ORDER BY m.movement_date DESC, m.created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, mapError("list movements", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}
