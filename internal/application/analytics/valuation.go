package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// Valuation valoriza las filas con on_hand > 0 de productos activos.
// Precios desconocidos cuentan como 0; el margen es 0 si el costo total es 0.
func (uc *ReportUseCase) Valuation(ctx context.Context, companyID, warehouseID string) (*dto.ValuationResponse, error) {
	items, err := uc.ValuationItems(ctx, companyID, warehouseID)
	if err != nil {
		return nil, err
	}

	summary := summarizeValuation(items)

	top := items
	if len(top) > topValuedItemsN {
		top = top[:topValuedItemsN]
	}
	return &dto.ValuationResponse{
		Summary:        summary,
		TopValuedItems: top,
		GeneratedAt:    uc.now().UTC(),
	}, nil
}

func summarizeValuation(items []dto.ValuationItemDTO) dto.ValuationSummaryDTO {
	summary := dto.ValuationSummaryDTO{
		TotalCostValue:         decimal.Zero,
		TotalSellingValue:      decimal.Zero,
		ProfitMarginPercentage: decimal.Zero,
		TotalItemsValued:       len(items),
	}
	for _, it := range items {
		summary.TotalCostValue = summary.TotalCostValue.Add(it.CostValue)
		summary.TotalSellingValue = summary.TotalSellingValue.Add(it.SellingValue)
	}
	summary.TotalPotentialProfit = summary.TotalSellingValue.Sub(summary.TotalCostValue)
	if summary.TotalCostValue.IsPositive() {
		summary.ProfitMarginPercentage = summary.TotalPotentialProfit.Div(summary.TotalCostValue).Mul(hundred).Round(2)
	}
	return summary
}

// ValuationItems devuelve todas las filas valorizadas ordenadas por valor a costo (también para exportar).
func (uc *ReportUseCase) ValuationItems(ctx context.Context, companyID, warehouseID string) ([]dto.ValuationItemDTO, error) {
	var positions []repository.StockPosition
	err := uc.snap.ReadSnapshot(ctx, func(repo repository.ReportRepository) error {
		var err error
		positions, err = repo.StockPositions(ctx, companyID, repository.PositionFilter{WarehouseID: warehouseID})
		return err
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ValuationItemDTO, 0, len(positions))
	for _, p := range positions {
		if !p.ProductActive || p.Entry.QuantityOnHand <= 0 {
			continue
		}
		qty := p.Entry.QuantityOnHand
		cost := valueOf(qty, p.CostPrice)
		selling := valueOf(qty, p.SellingPrice)
		items = append(items, dto.ValuationItemDTO{
			ProductID:       p.Entry.ProductID,
			ProductName:     p.ProductName,
			SKU:             p.SKU,
			Category:        categoryName(p),
			Warehouse:       p.WarehouseName,
			QuantityOnHand:  qty,
			CostPrice:       priceOrZero(p.CostPrice),
			SellingPrice:    priceOrZero(p.SellingPrice),
			CostValue:       cost,
			SellingValue:    selling,
			PotentialProfit: selling.Sub(cost),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CostValue.Equal(items[j].CostValue) {
			return items[i].CostValue.GreaterThan(items[j].CostValue)
		}
		return items[i].SKU < items[j].SKU
	})
	return items, nil
}
