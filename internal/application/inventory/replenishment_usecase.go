package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de la empresa (o de una bodega).
type ReplenishmentUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(reportRepo repository.ReportRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{reportRepo: reportRepo}
}

// GenerateReplenishmentList devuelve los productos activos en o por debajo de su punto de
// reorden con la cantidad sugerida de pedido. warehouseID vacío = stock global de la empresa.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, companyID, warehouseID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	positions, err := uc.reportRepo.StockPositions(ctx, companyID, repository.PositionFilter{WarehouseID: warehouseID})
	if err != nil {
		return nil, err
	}

	// Agrupar por producto: el punto de reorden es del producto, no de la bodega
	type agg struct {
		pos     repository.StockPosition
		current int64
	}
	byProduct := make(map[string]*agg)
	order := make([]string, 0)
	for _, p := range positions {
		if !p.ProductActive || p.ReorderPoint <= 0 {
			continue
		}
		a, ok := byProduct[p.Entry.ProductID]
		if !ok {
			a = &agg{pos: p}
			byProduct[p.Entry.ProductID] = a
			order = append(order, p.Entry.ProductID)
		}
		a.current += p.Entry.QuantityOnHand
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, id := range order {
		a := byProduct[id]
		if a.current > a.pos.ReorderPoint {
			continue
		}
		qty := a.pos.ReorderQuantity
		if qty <= 0 {
			// Sin cantidad de reorden: llevar a 1.5x el punto de reorden
			qty = a.pos.ReorderPoint*3/2 - a.current
		}
		if qty < 0 {
			qty = 0
		}
		unitCost := decimal.Zero
		if a.pos.CostPrice.Valid {
			unitCost = a.pos.CostPrice.Decimal
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          id,
			SKU:                a.pos.SKU,
			ProductName:        a.pos.ProductName,
			CurrentStock:       a.current,
			ReorderPoint:       a.pos.ReorderPoint,
			SuggestedOrderQty:  qty,
			UnitCost:           unitCost,
			EstimatedOrderCost: unitCost.Mul(decimal.NewFromInt(qty)),
		})
	}

	// Mayor déficit primero; desempate por costo estimado y SKU
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.ReorderPoint - a.CurrentStock
		defB := b.ReorderPoint - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		if !a.EstimatedOrderCost.Equal(b.EstimatedOrderCost) {
			return a.EstimatedOrderCost.GreaterThan(b.EstimatedOrderCost)
		}
		return a.SKU < b.SKU
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
