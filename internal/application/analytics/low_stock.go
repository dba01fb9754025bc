package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// DefaultThresholdPercentage umbral por defecto del reporte de stock bajo.
const DefaultThresholdPercentage = 100

// LowStock lista filas de productos activos con on_hand <= mínimo * pct / 100.
// critical si el mínimo es > 0 y on_hand/mínimo <= 0.25; el resto warning.
// Las filas con mínimo 0 (ratio indefinido) van al final.
func (uc *ReportUseCase) LowStock(ctx context.Context, companyID, warehouseID string, thresholdPercentage int) (*dto.LowStockResponse, error) {
	if thresholdPercentage < 0 {
		return nil, fmt.Errorf("%w: threshold_percentage no puede ser negativo", domain.ErrInvalidInput)
	}

	var positions []repository.StockPosition
	err := uc.snap.ReadSnapshot(ctx, func(repo repository.ReportRepository) error {
		var err error
		positions, err = repo.StockPositions(ctx, companyID, repository.PositionFilter{WarehouseID: warehouseID})
		return err
	})
	if err != nil {
		return nil, err
	}

	pct := int64(thresholdPercentage)
	items := make([]dto.LowStockItemDTO, 0)
	for _, p := range positions {
		onHand, min := p.Entry.QuantityOnHand, p.MinimumStockLevel
		// on_hand <= min * pct / 100
		if !p.ProductActive || cmpProducts(onHand, 100, min, pct) > 0 {
			continue
		}
		item := dto.LowStockItemDTO{
			ProductID:         p.Entry.ProductID,
			ProductName:       p.ProductName,
			SKU:               p.SKU,
			Category:          categoryName(p),
			WarehouseID:       p.Entry.WarehouseID,
			Warehouse:         p.WarehouseName,
			QuantityOnHand:    onHand,
			QuantityAvailable: p.Entry.QuantityAvailable(),
			MinimumStockLevel: min,
			ReorderPoint:      p.ReorderPoint,
			ReorderQuantity:   p.ReorderQuantity,
			StockRatio:        decimal.Zero,
			Criticality:       entity.SeverityWarning,
		}
		if min > 0 {
			item.StockRatio = decimal.NewFromInt(onHand).Div(decimal.NewFromInt(min)).Round(4)
			if cmpProducts(onHand, criticalRatioQuart, min, 1) <= 0 {
				item.Criticality = entity.SeverityCritical
			}
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		aUndef, bUndef := a.MinimumStockLevel == 0, b.MinimumStockLevel == 0
		if aUndef != bUndef {
			return !aUndef
		}
		if !aUndef {
			// a.on/a.min < b.on/b.min sin divisiones
			if c := cmpProducts(a.QuantityOnHand, b.MinimumStockLevel, b.QuantityOnHand, a.MinimumStockLevel); c != 0 {
				return c < 0
			}
		}
		return a.SKU < b.SKU
	})

	out := &dto.LowStockResponse{
		Summary:       dto.LowStockSummaryDTO{ThresholdPercentage: thresholdPercentage, TotalLowStockItems: len(items)},
		LowStockItems: items,
		GeneratedAt:   uc.now().UTC(),
	}
	for _, it := range items {
		if it.Criticality == entity.SeverityCritical {
			out.Summary.CriticalItems++
		} else {
			out.Summary.WarningItems++
		}
	}
	return out, nil
}

// cmpProducts compara a*b con c*d; los productos pueden exceder int64.
func cmpProducts(a, b, c, d int64) int {
	left := decimal.NewFromInt(a).Mul(decimal.NewFromInt(b))
	right := decimal.NewFromInt(c).Mul(decimal.NewFromInt(d))
	return left.Cmp(right)
}
