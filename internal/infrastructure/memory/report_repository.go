package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reportes sobre una versión del estado.
type ReportRepo struct{ b binding }

// CountActiveProducts cuenta productos activos de la empresa.
func (r *ReportRepo) CountActiveProducts(_ context.Context, companyID string) (int, error) {
	n := 0
	for _, p := range r.b.view().products {
		if p.CompanyID == companyID && p.IsActive {
			n++
		}
	}
	return n, nil
}

// CountActiveWarehouses cuenta bodegas activas de la empresa.
func (r *ReportRepo) CountActiveWarehouses(_ context.Context, companyID string) (int, error) {
	n := 0
	for _, w := range r.b.view().warehouses {
		if w.CompanyID == companyID && w.IsActive {
			n++
		}
	}
	return n, nil
}

// StockPositions une ledger, producto, categoría y bodega; orden por producto y bodega.
func (r *ReportRepo) StockPositions(_ context.Context, companyID string, f repository.PositionFilter) ([]repository.StockPosition, error) {
	st := r.b.view()
	out := make([]repository.StockPosition, 0)
	for k, e := range st.stock {
		if k.CompanyID != companyID {
			continue
		}
		if f.WarehouseID != "" && k.WarehouseID != f.WarehouseID {
			continue
		}
		p, ok := st.products[k.ProductID]
		if !ok {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		w, ok := st.warehouses[k.WarehouseID]
		if !ok {
			continue
		}
		pos := repository.StockPosition{
			Entry:             e,
			ProductName:       p.Name,
			SKU:               p.SKU,
			CategoryID:        p.CategoryID,
			WarehouseName:     w.Name,
			CostPrice:         p.CostPrice,
			SellingPrice:      p.SellingPrice,
			MinimumStockLevel: p.MinimumStockLevel,
			ReorderPoint:      p.ReorderPoint,
			ReorderQuantity:   p.ReorderQuantity,
			ProductActive:     p.IsActive,
		}
		if c, ok := st.categories[p.CategoryID]; ok && c.CompanyID == companyID {
			pos.CategoryName = c.Name
		} else {
			pos.CategoryID = ""
		}
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductName != out[j].ProductName {
			return out[i].ProductName < out[j].ProductName
		}
		if out[i].WarehouseName != out[j].WarehouseName {
			return out[i].WarehouseName < out[j].WarehouseName
		}
		return out[i].Entry.ID < out[j].Entry.ID
	})
	return out, nil
}

// MovementRows movimientos filtrados con datos de producto y bodega.
func (r *ReportRepo) MovementRows(_ context.Context, companyID string, f repository.MovementFilter) ([]repository.MovementRow, error) {
	st := r.b.view()
	movs := filterMovements(st, companyID, f)
	if f.Limit > 0 && f.Limit < len(movs) {
		movs = movs[:f.Limit]
	}
	out := make([]repository.MovementRow, 0, len(movs))
	for _, m := range movs {
		row := repository.MovementRow{Movement: m}
		if p, ok := st.products[m.ProductID]; ok {
			row.ProductName = p.Name
			row.SKU = p.SKU
		}
		if w, ok := st.warehouses[m.WarehouseID]; ok {
			row.WarehouseName = w.Name
		}
		out = append(out, row)
	}
	return out, nil
}
