package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// Dashboard construye los KPIs de inventario de la empresa.
//
//  1. Productos y bodegas activos
//  2. Filas en stock bajo y valor total (costo) sobre productos activos
//  3. Top 5 productos por cantidad en mano
//  4. Últimos 10 movimientos, conteo de 7 días y tendencia diaria de 30 días
func (uc *ReportUseCase) Dashboard(ctx context.Context, companyID string) (*dto.DashboardResponse, error) {
	now := uc.now().UTC()
	monthStart := now.AddDate(0, 0, -defaultWindowDays)
	weekStart := now.AddDate(0, 0, -recentWindowDays)

	out := &dto.DashboardResponse{GeneratedAt: now}
	err := uc.snap.ReadSnapshot(ctx, func(repo repository.ReportRepository) error {
		var err error
		if out.Summary.TotalProducts, err = repo.CountActiveProducts(ctx, companyID); err != nil {
			return err
		}
		if out.Summary.TotalWarehouses, err = repo.CountActiveWarehouses(ctx, companyID); err != nil {
			return err
		}

		positions, err := repo.StockPositions(ctx, companyID, repository.PositionFilter{})
		if err != nil {
			return err
		}
		out.Summary.TotalInventoryValue = decimal.Zero
		for _, p := range positions {
			if !p.ProductActive {
				continue
			}
			if p.Entry.QuantityOnHand <= p.MinimumStockLevel {
				out.Summary.LowStockItems++
			}
			out.Summary.TotalInventoryValue = out.Summary.TotalInventoryValue.Add(valueOf(p.Entry.QuantityOnHand, p.CostPrice))
		}
		out.TopProducts = topProductsByQuantity(positions, dashboardTopN)

		recent, err := repo.MovementRows(ctx, companyID, repository.MovementFilter{Limit: recentActivityN})
		if err != nil {
			return err
		}
		out.RecentActivity = make([]dto.MovementActivityDTO, 0, len(recent))
		for _, r := range recent {
			out.RecentActivity = append(out.RecentActivity, dto.MovementActivityDTO{
				ID:            r.Movement.ID,
				ProductID:     r.Movement.ProductID,
				ProductName:   r.ProductName,
				SKU:           r.SKU,
				WarehouseName: r.WarehouseName,
				Type:          r.Movement.Type,
				Quantity:      r.Movement.Quantity,
				UserID:        r.Movement.UserID,
				MovementDate:  r.Movement.MovementDate,
			})
		}

		month, err := repo.MovementRows(ctx, companyID, repository.MovementFilter{From: &monthStart, To: &now})
		if err != nil {
			return err
		}
		for _, r := range month {
			if !r.Movement.MovementDate.Before(weekStart) {
				out.Summary.RecentMovements++
			}
		}
		out.MovementTrends = dailyTrends(month)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// topProductsByQuantity suma on_hand por producto activo y devuelve los n mayores.
func topProductsByQuantity(positions []repository.StockPosition, n int) []dto.TopProductDTO {
	byProduct := make(map[string]*dto.TopProductDTO)
	for _, p := range positions {
		if !p.ProductActive {
			continue
		}
		t, ok := byProduct[p.Entry.ProductID]
		if !ok {
			t = &dto.TopProductDTO{ProductID: p.Entry.ProductID, Name: p.ProductName, SKU: p.SKU}
			byProduct[p.Entry.ProductID] = t
		}
		t.TotalQuantity += p.Entry.QuantityOnHand
	}
	list := make([]dto.TopProductDTO, 0, len(byProduct))
	for _, t := range byProduct {
		list = append(list, *t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].TotalQuantity != list[j].TotalQuantity {
			return list[i].TotalQuantity > list[j].TotalQuantity
		}
		return list[i].SKU < list[j].SKU
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}

// dailyTrends agrupa movimientos por (fecha UTC, tipo), ordenado por fecha y luego tipo.
func dailyTrends(rows []repository.MovementRow) []dto.MovementTrendDTO {
	type key struct{ date, typ string }
	byKey := make(map[key]*dto.MovementTrendDTO)
	for _, r := range rows {
		k := key{r.Movement.MovementDate.UTC().Format(dateLayout), r.Movement.Type}
		t, ok := byKey[k]
		if !ok {
			t = &dto.MovementTrendDTO{Date: k.date, Type: k.typ}
			byKey[k] = t
		}
		t.Count++
		t.TotalQuantity += r.Movement.Quantity
	}
	list := make([]dto.MovementTrendDTO, 0, len(byKey))
	for _, t := range byKey {
		list = append(list, *t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		return list[i].Type < list[j].Type
	})
	return list
}
