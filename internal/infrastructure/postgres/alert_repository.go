package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, company_id, user_id, alert_type, title, message, severity, entity_type, entity_id,
	is_read, expires_at, created_at`

// AlertRepo alertas sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.UserID, &a.AlertType, &a.Title, &a.Message, &a.Severity,
		&a.EntityType, &a.EntityID, &a.IsRead, &a.ExpiresAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste la alerta (dentro de la transacción del movimiento).
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO alerts (`+alertColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.CompanyID, a.UserID, a.AlertType, a.Title, a.Message, a.Severity,
		a.EntityType, a.EntityID, a.IsRead, a.ExpiresAt, a.CreatedAt,
	)
	if err != nil {
		return mapError("create alert", err)
	}
	return nil
}

// List más recientes primero, con el total sin paginar.
func (r *AlertRepo) List(ctx context.Context, companyID string, f repository.AlertFilter) ([]*entity.Alert, int, error) {
	w := newWhere("company_id = ?", companyID)
	if f.UnreadOnly {
		w.addRaw("NOT is_read")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM alerts`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapError("count alerts", err)
	}

	query := `SELECT ` + alertColumns + ` FROM alerts` + w.sql() +
		` ORDER BY created_at DESC, id` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, mapError("list alerts", err)
	}
	defer rows.Close()
	list := make([]*entity.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

// MarkRead marca la alerta como leída; ErrNotFound si no pertenece a la empresa.
func (r *AlertRepo) MarkRead(ctx context.Context, companyID, id string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, `
		UPDATE alerts SET is_read = TRUE
		WHERE company_id = $1 AND id = $2
		RETURNING `+alertColumns,
		companyID, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == pgInvalidText {
			return nil, fmt.Errorf("%w: alerta %s", domain.ErrNotFound, id)
		}
		return nil, mapError("mark alert read", err)
	}
	return a, nil
}
