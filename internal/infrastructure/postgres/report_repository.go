package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura del agregador de reportes.
// Se usa dentro de la transacción REPEATABLE READ de TxRunner.ReadSnapshot.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// CountActiveProducts cuenta productos activos de la empresa.
func (r *ReportRepo) CountActiveProducts(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE company_id = $1 AND is_active`, companyID).Scan(&n)
	if err != nil {
		return 0, mapError("reports.CountActiveProducts", err)
	}
	return n, nil
}

// CountActiveWarehouses cuenta bodegas activas de la empresa.
func (r *ReportRepo) CountActiveWarehouses(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM warehouses WHERE company_id = $1 AND is_active`, companyID).Scan(&n)
	if err != nil {
		return 0, mapError("reports.CountActiveWarehouses", err)
	}
	return n, nil
}

// StockPositions une ledger, producto, categoría y bodega; orden por producto y bodega.
// La categoría solo se une si es de la misma empresa.
func (r *ReportRepo) StockPositions(ctx context.Context, companyID string, f repository.PositionFilter) ([]repository.StockPosition, error) {
	w := newWhere("s.company_id = ?", companyID)
	if f.WarehouseID != "" {
		w.add("s.warehouse_id = ?", f.WarehouseID)
	}
	if f.CategoryID != "" {
		w.add("p.category_id = ?", f.CategoryID)
	}
	query := `
	SELECT
	    s.id, s.company_id, s.product_id, s.warehouse_id, s.quantity_on_hand, s.quantity_reserved,
	    s.last_movement_at, s.last_counted_at, s.created_at, s.updated_at,
	    p.name, p.sku, c.id::TEXT, COALESCE(c.name, ''), wh.name,
	    p.cost_price, p.selling_price, p.minimum_stock_level, p.reorder_point, p.reorder_quantity, p.is_active
	FROM stock_entries s
	JOIN products        p  ON p.id  = s.product_id
	JOIN warehouses      wh ON wh.id = s.warehouse_id
	LEFT JOIN categories c  ON c.id  = p.category_id AND c.company_id = s.company_id` +
		w.sql() + `
	ORDER BY p.name, wh.name, s.id`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("reports.StockPositions", err)
	}
	defer rows.Close()

	out := make([]repository.StockPosition, 0)
	for rows.Next() {
		var pos repository.StockPosition
		var categoryID *string
		e := &pos.Entry
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.ProductID, &e.WarehouseID, &e.QuantityOnHand, &e.QuantityReserved,
			&e.LastMovementAt, &e.LastCountedAt, &e.CreatedAt, &e.UpdatedAt,
			&pos.ProductName, &pos.SKU, &categoryID, &pos.CategoryName, &pos.WarehouseName,
			&pos.CostPrice, &pos.SellingPrice, &pos.MinimumStockLevel, &pos.ReorderPoint, &pos.ReorderQuantity, &pos.ProductActive,
		); err != nil {
			return nil, fmt.Errorf("reports.StockPositions scan: %w", err)
		}
		pos.CategoryID = derefString(categoryID)
		out = append(out, pos)
	}
	return out, rows.Err()
}

// MovementRows movimientos filtrados con nombre/SKU del producto y nombre de bodega,
// más recientes primero. Offset se ignora; Limit 0 = todos.
func (r *ReportRepo) MovementRows(ctx context.Context, companyID string, f repository.MovementFilter) ([]repository.MovementRow, error) {
	w := movementWhere(companyID, f)
	query := `SELECT ` + movementColumns + `, p.name, p.sku, wh.name
	FROM inventory_movements m
	JOIN products   p  ON p.id  = m.product_id
	JOIN warehouses wh ON wh.id = m.warehouse_id` +
		w.sql() + ` ORDER BY m.movement_date DESC, m.created_at DESC` + w.page(f.Limit, 0)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("reports.MovementRows", err)
	}
	defer rows.Close()

	out := make([]repository.MovementRow, 0)
	for rows.Next() {
		var row repository.MovementRow
		m, err := scanMovement(rows, &row.ProductName, &row.SKU, &row.WarehouseName)
		if err != nil {
			return nil, fmt.Errorf("reports.MovementRows scan: %w", err)
		}
		row.Movement = *m
		out = append(out, row)
	}
	return out, rows.Err()
}
