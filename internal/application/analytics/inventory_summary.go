package analytics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// InventorySummary detalle por (producto, bodega) con totales y agregados por categoría y bodega.
// Incluye productos inactivos: es una foto del ledger completo.
func (uc *ReportUseCase) InventorySummary(ctx context.Context, companyID, warehouseID, categoryID string) (*dto.InventorySummaryResponse, error) {
	var positions []repository.StockPosition
	err := uc.snap.ReadSnapshot(ctx, func(repo repository.ReportRepository) error {
		var err error
		positions, err = repo.StockPositions(ctx, companyID, repository.PositionFilter{
			WarehouseID: warehouseID,
			CategoryID:  categoryID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	out := &dto.InventorySummaryResponse{
		Summary: dto.InventoryTotalsDTO{
			TotalCostValue:    decimal.Zero,
			TotalSellingValue: decimal.Zero,
		},
		DetailedItems: make([]dto.InventoryItemDTO, 0, len(positions)),
		GeneratedAt:   uc.now().UTC(),
	}
	categories := newGroupAccumulator()
	warehouses := newGroupAccumulator()

	for _, p := range positions {
		qty := p.Entry.QuantityOnHand
		costValue := valueOf(qty, p.CostPrice)
		sellingValue := valueOf(qty, p.SellingPrice)
		category := categoryName(p)

		out.DetailedItems = append(out.DetailedItems, dto.InventoryItemDTO{
			ProductID:         p.Entry.ProductID,
			ProductName:       p.ProductName,
			SKU:               p.SKU,
			Category:          category,
			WarehouseID:       p.Entry.WarehouseID,
			Warehouse:         p.WarehouseName,
			QuantityOnHand:    qty,
			QuantityReserved:  p.Entry.QuantityReserved,
			QuantityAvailable: p.Entry.QuantityAvailable(),
			CostPrice:         p.CostPrice,
			SellingPrice:      p.SellingPrice,
			TotalCostValue:    costValue,
			TotalSellingValue: sellingValue,
		})

		out.Summary.TotalItems++
		out.Summary.TotalQuantity += qty
		out.Summary.TotalCostValue = out.Summary.TotalCostValue.Add(costValue)
		out.Summary.TotalSellingValue = out.Summary.TotalSellingValue.Add(sellingValue)

		categories.add(p.CategoryID, category, qty, costValue, sellingValue)
		warehouses.add(p.Entry.WarehouseID, p.WarehouseName, qty, costValue, sellingValue)
	}
	out.Summary.PotentialProfit = out.Summary.TotalSellingValue.Sub(out.Summary.TotalCostValue)
	out.ByCategory = categories.list()
	out.ByWarehouse = warehouses.list()
	return out, nil
}

// groupAccumulator agrega filas preservando el orden de primera aparición.
type groupAccumulator struct {
	order  []string
	groups map[string]*dto.GroupTotalsDTO
}

func newGroupAccumulator() *groupAccumulator {
	return &groupAccumulator{groups: make(map[string]*dto.GroupTotalsDTO)}
}

func (g *groupAccumulator) add(id, name string, qty int64, cost, selling decimal.Decimal) {
	key := id
	if key == "" {
		key = "name:" + name
	}
	t, ok := g.groups[key]
	if !ok {
		t = &dto.GroupTotalsDTO{ID: id, Name: name, TotalCostValue: decimal.Zero, TotalSellingValue: decimal.Zero}
		g.groups[key] = t
		g.order = append(g.order, key)
	}
	t.Items++
	t.TotalQuantity += qty
	t.TotalCostValue = t.TotalCostValue.Add(cost)
	t.TotalSellingValue = t.TotalSellingValue.Add(selling)
}

func (g *groupAccumulator) list() []dto.GroupTotalsDTO {
	out := make([]dto.GroupTotalsDTO, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, *g.groups[k])
	}
	return out
}
