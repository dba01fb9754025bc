package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, company_id, product_id, warehouse_id, quantity_on_hand, quantity_reserved,
	last_movement_at, last_counted_at, created_at, updated_at`

// StockRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func scanStock(row pgx.Row) (*entity.StockEntry, error) {
	var e entity.StockEntry
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.ProductID, &e.WarehouseID, &e.QuantityOnHand, &e.QuantityReserved,
		&e.LastMovementAt, &e.LastCountedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetOrCreateForUpdate crea la fila en cero si no existe (ON CONFLICT DO NOTHING sobre la
// clave única) y luego la bloquea con SELECT ... FOR UPDATE hasta el fin de la transacción.
func (r *StockRepo) GetOrCreateForUpdate(ctx context.Context, companyID, productID, warehouseID string) (*entity.StockEntry, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_entries (id, company_id, product_id, warehouse_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, product_id, warehouse_id) DO NOTHING`,
		uuid.New().String(), companyID, productID, warehouseID,
	)
	if err != nil {
		return nil, mapError("create stock entry", err)
	}

	e, err := scanStock(r.q.QueryRow(ctx, `
		SELECT `+stockColumns+`
		FROM stock_entries
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3
		FOR UPDATE`,
		companyID, productID, warehouseID,
	))
	if err != nil {
		return nil, mapError("get stock for update", err)
	}
	return e, nil
}

// Update persiste contadores y fechas de la fila.
func (r *StockRepo) Update(ctx context.Context, e *entity.StockEntry) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_entries
		SET quantity_on_hand = $2, quantity_reserved = $3, last_movement_at = $4,
		    last_counted_at = $5, updated_at = $6
		WHERE id = $1`,
		e.ID, e.QuantityOnHand, e.QuantityReserved, e.LastMovementAt, e.LastCountedAt, e.UpdatedAt,
	)
	if err != nil {
		return mapError("update stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: fila de stock %s", domain.ErrNotFound, e.ID)
	}
	return nil
}

// List filtra por empresa; más recientes primero. Devuelve también el total sin paginar.
func (r *StockRepo) List(ctx context.Context, companyID string, f repository.StockFilter) ([]*entity.StockEntry, int, error) {
	w := newWhere("s.company_id = ?", companyID)
	if f.WarehouseID != "" {
		w.add("s.warehouse_id = ?", f.WarehouseID)
	}
	if f.ProductID != "" {
		w.add("s.product_id = ?", f.ProductID)
	}
	if f.LowStockOnly {
		w.addRaw("s.quantity_on_hand <= p.minimum_stock_level")
	}
	from := ` FROM stock_entries s JOIN products p ON p.id = s.product_id`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapError("count stock", err)
	}

	query := `SELECT s.id, s.company_id, s.product_id, s.warehouse_id, s.quantity_on_hand, s.quantity_reserved,
		s.last_movement_at, s.last_counted_at, s.created_at, s.updated_at` +
		from + w.sql() + ` ORDER BY s.updated_at DESC, s.id`
	query += w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, mapError("list stock", err)
	}
	defer rows.Close()
	list := make([]*entity.StockEntry, 0)
	for rows.Next() {
		e, err := scanStock(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}
