package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, category_id, sku, name, description, cost_price, selling_price,
	minimum_stock_level, reorder_point, reorder_quantity, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &categoryID, &p.SKU, &p.Name, &p.Description, &p.CostPrice, &p.SellingPrice,
		&p.MinimumStockLevel, &p.ReorderPoint, &p.ReorderQuantity, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CategoryID = derefString(categoryID)
	return &p, nil
}

// Create persiste un nuevo producto. SKU repetido en la empresa = domain.ErrConflict.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.CompanyID, nullIfEmpty(p.CategoryID), p.SKU, p.Name, p.Description, p.CostPrice, p.SellingPrice,
		p.MinimumStockLevel, p.ReorderPoint, p.ReorderQuantity, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto de la empresa; nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE company_id = $1 AND id = $2`,
		companyID, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == pgInvalidText {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update reemplaza los campos editables; el SKU no cambia. ErrNotFound si no es de la empresa.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET
			category_id = $3, name = $4, description = $5, cost_price = $6, selling_price = $7,
			minimum_stock_level = $8, reorder_point = $9, reorder_quantity = $10, is_active = $11, updated_at = $12
		WHERE company_id = $1 AND id = $2`,
		p.CompanyID, p.ID, nullIfEmpty(p.CategoryID), p.Name, p.Description, p.CostPrice, p.SellingPrice,
		p.MinimumStockLevel, p.ReorderPoint, p.ReorderQuantity, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return mapError("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, p.ID)
	}
	return nil
}

// ListByCompany lista productos por empresa ordenados por nombre.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	w := newWhere("company_id = ?", companyID)
	if search := strings.TrimSpace(f.Search); search != "" {
		w.add("concat_ws(' ', name, sku, description) ILIKE ?", "%"+search+"%")
	}
	if f.CategoryID != "" {
		w.add("category_id = ?", f.CategoryID)
	}
	if f.IsActive != nil {
		w.add("is_active = ?", *f.IsActive)
	}
	if f.LowStockOnly {
		w.addRaw(`EXISTS (SELECT 1 FROM stock_entries s
			WHERE s.company_id = products.company_id AND s.product_id = products.id
			AND s.quantity_on_hand <= products.minimum_stock_level)`)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapError("count products", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+`
		FROM products`+w.sql()+`
		ORDER BY name, id`+w.page(f.Limit, f.Offset),
		w.args...,
	)
	if err != nil {
		return nil, 0, mapError("list products", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}
