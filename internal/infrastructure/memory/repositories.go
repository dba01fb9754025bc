package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var (
	_ repository.StockRepository     = (*StockRepo)(nil)
	_ repository.MovementRepository  = (*MovementRepo)(nil)
	_ repository.AlertRepository     = (*AlertRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
)

// ── Stock ────────────────────────────────────────────────────────────────────

// StockRepo ledger en memoria.
type StockRepo struct{ b binding }

// GetOrCreateForUpdate devuelve la fila (creándola en cero si no existe).
func (r *StockRepo) GetOrCreateForUpdate(_ context.Context, companyID, productID, warehouseID string) (*entity.StockEntry, error) {
	var out entity.StockEntry
	err := r.b.mutate(func(st *state) error {
		k := stockKey{companyID, productID, warehouseID}
		e, ok := st.stock[k]
		if !ok {
			now := time.Now().UTC()
			e = entity.StockEntry{
				ID:          uuid.New().String(),
				CompanyID:   companyID,
				ProductID:   productID,
				WarehouseID: warehouseID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			st.stock[k] = e
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update persiste contadores y fechas de la fila.
func (r *StockRepo) Update(_ context.Context, entry *entity.StockEntry) error {
	return r.b.mutate(func(st *state) error {
		k := stockKey{entry.CompanyID, entry.ProductID, entry.WarehouseID}
		if _, ok := st.stock[k]; !ok {
			return fmt.Errorf("%w: fila de stock", domain.ErrNotFound)
		}
		st.stock[k] = *entry
		return nil
	})
}

// List filtra por empresa; más recientes primero.
func (r *StockRepo) List(_ context.Context, companyID string, f repository.StockFilter) ([]*entity.StockEntry, int, error) {
	st := r.b.view()
	rows := make([]entity.StockEntry, 0)
	for k, e := range st.stock {
		if k.CompanyID != companyID {
			continue
		}
		if f.WarehouseID != "" && k.WarehouseID != f.WarehouseID {
			continue
		}
		if f.ProductID != "" && k.ProductID != f.ProductID {
			continue
		}
		if f.LowStockOnly {
			p, ok := st.products[k.ProductID]
			if !ok || e.QuantityOnHand > p.MinimumStockLevel {
				continue
			}
		}
		rows = append(rows, e)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].UpdatedAt.Equal(rows[j].UpdatedAt) {
			return rows[i].UpdatedAt.After(rows[j].UpdatedAt)
		}
		return rows[i].ID < rows[j].ID
	})
	total := len(rows)
	rows = paginate(rows, f.Limit, f.Offset)
	out := make([]*entity.StockEntry, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, total, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

// MovementRepo historial append-only en memoria.
type MovementRepo struct{ b binding }

// Create agrega el movimiento; la idempotency key es única por empresa.
func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.b.mutate(func(st *state) error {
		if m.IdempotencyKey != "" {
			for _, existing := range st.movements {
				if existing.CompanyID == m.CompanyID && existing.IdempotencyKey == m.IdempotencyKey {
					return fmt.Errorf("%w: idempotency_key duplicada", domain.ErrConflict)
				}
			}
		}
		st.movements = append(st.movements, *m)
		return nil
	})
}

// GetByIdempotencyKey devuelve nil, nil si no existe.
func (r *MovementRepo) GetByIdempotencyKey(_ context.Context, companyID, key string) (*entity.Movement, error) {
	st := r.b.view()
	for i := range st.movements {
		m := st.movements[i]
		if m.CompanyID == companyID && m.IdempotencyKey == key {
			return &m, nil
		}
	}
	return nil, nil
}

// List ordena por movement_date descendente.
func (r *MovementRepo) List(_ context.Context, companyID string, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	rows := filterMovements(r.b.view(), companyID, f)
	total := len(rows)
	rows = paginate(rows, f.Limit, f.Offset)
	out := make([]*entity.Movement, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, total, nil
}

func filterMovements(st *state, companyID string, f repository.MovementFilter) []entity.Movement {
	rows := make([]entity.Movement, 0)
	// Recorrido inverso: a igual fecha queda primero el más reciente
	for i := len(st.movements) - 1; i >= 0; i-- {
		m := st.movements[i]
		if m.CompanyID != companyID {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.WarehouseID != "" && m.WarehouseID != f.WarehouseID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.MovementDate.Before(*f.From) {
			continue
		}
		if f.To != nil && m.MovementDate.After(*f.To) {
			continue
		}
		rows = append(rows, m)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MovementDate.After(rows[j].MovementDate)
	})
	return rows
}

// ── Alertas ──────────────────────────────────────────────────────────────────

// AlertRepo alertas en memoria.
type AlertRepo struct{ b binding }

// Create agrega la alerta.
func (r *AlertRepo) Create(_ context.Context, a *entity.Alert) error {
	return r.b.mutate(func(st *state) error {
		st.alerts = append(st.alerts, *a)
		return nil
	})
}

// List más recientes primero.
func (r *AlertRepo) List(_ context.Context, companyID string, f repository.AlertFilter) ([]*entity.Alert, int, error) {
	st := r.b.view()
	rows := make([]entity.Alert, 0)
	for i := len(st.alerts) - 1; i >= 0; i-- {
		a := st.alerts[i]
		if a.CompanyID != companyID || (f.UnreadOnly && a.IsRead) {
			continue
		}
		rows = append(rows, a)
	}
	total := len(rows)
	rows = paginate(rows, f.Limit, f.Offset)
	out := make([]*entity.Alert, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, total, nil
}

// MarkRead marca como leída; ErrNotFound si no es de la empresa.
func (r *AlertRepo) MarkRead(_ context.Context, companyID, id string) (*entity.Alert, error) {
	var out entity.Alert
	err := r.b.mutate(func(st *state) error {
		for i := range st.alerts {
			if st.alerts[i].ID == id && st.alerts[i].CompanyID == companyID {
				st.alerts[i].IsRead = true
				out = st.alerts[i]
				return nil
			}
		}
		return fmt.Errorf("%w: alerta %s", domain.ErrNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Productos y bodegas ──────────────────────────────────────────────────────

// ProductRepo directorio de productos en memoria.
type ProductRepo struct{ b binding }

// Create devuelve ErrConflict si el SKU ya existe en la empresa.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.b.mutate(func(st *state) error {
		for _, existing := range st.products {
			if existing.CompanyID == p.CompanyID && existing.SKU == p.SKU {
				return fmt.Errorf("%w: sku %s ya existe", domain.ErrConflict, p.SKU)
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

// GetByID devuelve nil, nil si no existe en la empresa.
func (r *ProductRepo) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	p, ok := r.b.view().products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &p, nil
}

// Update reemplaza los campos editables conservando SKU y fecha de creación.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.b.mutate(func(st *state) error {
		existing, ok := st.products[p.ID]
		if !ok || existing.CompanyID != p.CompanyID {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, p.ID)
		}
		updated := *p
		updated.SKU = existing.SKU
		updated.CreatedAt = existing.CreatedAt
		st.products[p.ID] = updated
		return nil
	})
}

// ListByCompany ordenado por nombre.
func (r *ProductRepo) ListByCompany(_ context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	st := r.b.view()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	rows := make([]entity.Product, 0)
	for _, p := range st.products {
		if p.CompanyID != companyID {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		if f.LowStockOnly && !hasLowStockRow(st, p) {
			continue
		}
		rows = append(rows, p)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID < rows[j].ID
	})
	total := len(rows)
	rows = paginate(rows, f.Limit, f.Offset)
	out := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, total, nil
}

func matchesSearch(p entity.Product, lowered string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowered) ||
		strings.Contains(strings.ToLower(p.SKU), lowered) ||
		strings.Contains(strings.ToLower(p.Description), lowered)
}

func hasLowStockRow(st *state, p entity.Product) bool {
	for k, e := range st.stock {
		if k.CompanyID == p.CompanyID && k.ProductID == p.ID && e.QuantityOnHand <= p.MinimumStockLevel {
			return true
		}
	}
	return false
}

// CategoryRepo lectura de categorías en memoria.
type CategoryRepo struct{ b binding }

// GetByID devuelve nil, nil si no existe en la empresa.
func (r *CategoryRepo) GetByID(_ context.Context, companyID, id string) (*entity.Category, error) {
	c, ok := r.b.view().categories[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return &c, nil
}

// WarehouseRepo directorio de bodegas en memoria.
type WarehouseRepo struct{ b binding }

// Create devuelve ErrConflict si el código ya existe en la empresa.
func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.b.mutate(func(st *state) error {
		for _, existing := range st.warehouses {
			if existing.CompanyID == w.CompanyID && existing.Code == w.Code {
				return fmt.Errorf("%w: código %s ya existe", domain.ErrConflict, w.Code)
			}
		}
		st.warehouses[w.ID] = *w
		return nil
	})
}

// GetByID devuelve nil, nil si no existe en la empresa.
func (r *WarehouseRepo) GetByID(_ context.Context, companyID, id string) (*entity.Warehouse, error) {
	w, ok := r.b.view().warehouses[id]
	if !ok || w.CompanyID != companyID {
		return nil, nil
	}
	return &w, nil
}

// ListByCompany ordenado por nombre.
func (r *WarehouseRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	rows := make([]entity.Warehouse, 0)
	for _, w := range r.b.view().warehouses {
		if w.CompanyID == companyID {
			rows = append(rows, w)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID < rows[j].ID
	})
	rows = paginate(rows, limit, offset)
	out := make([]*entity.Warehouse, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

// paginate aplica offset/limit; limit <= 0 = sin límite.
func paginate[T any](rows []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return rows[:0]
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
