package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// MovementAnalysisQuery filtros del análisis. Sin fechas = últimos 30 días.
type MovementAnalysisQuery struct {
	From      *time.Time
	To        *time.Time
	ProductID string
	Type      string
}

// MovementAnalysis agrega los movimientos de la ventana por tipo, producto y día.
// Todos los agregados usan el mismo conjunto filtrado.
func (uc *ReportUseCase) MovementAnalysis(ctx context.Context, companyID string, q MovementAnalysisQuery) (*dto.MovementAnalysisResponse, error) {
	now := uc.now().UTC()
	to := now
	if q.To != nil {
		to = q.To.UTC()
	}
	from := to.AddDate(0, 0, -defaultWindowDays)
	if q.From != nil {
		from = q.From.UTC()
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: date_from posterior a date_to", domain.ErrInvalidInput)
	}
	q.Type = strings.ToLower(strings.TrimSpace(q.Type))
	if q.Type != "" && !entity.ValidMovementType(q.Type) {
		return nil, fmt.Errorf("%w: movement_type %q", domain.ErrInvalidInput, q.Type)
	}

	var rows []repository.MovementRow
	err := uc.snap.ReadSnapshot(ctx, func(repo repository.ReportRepository) error {
		var err error
		rows, err = repo.MovementRows(ctx, companyID, repository.MovementFilter{
			ProductID: q.ProductID,
			Type:      q.Type,
			From:      &from,
			To:        &to,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	summary := make(map[string]dto.MovementTypeSummaryDTO)
	byProduct := make(map[string]*dto.ProductMovementDTO)
	for _, r := range rows {
		m := r.Movement
		s, ok := summary[m.Type]
		if !ok {
			s.TotalValue = decimal.Zero
		}
		s.Count++
		s.TotalQuantity += m.Quantity
		s.TotalValue = s.TotalValue.Add(m.Value())
		summary[m.Type] = s

		p, ok := byProduct[m.ProductID]
		if !ok {
			p = &dto.ProductMovementDTO{ProductID: m.ProductID, Name: r.ProductName, SKU: r.SKU}
			byProduct[m.ProductID] = p
		}
		p.MovementCount++
		p.TotalQuantityMoved += m.Quantity
	}

	top := make([]dto.ProductMovementDTO, 0, len(byProduct))
	for _, p := range byProduct {
		top = append(top, *p)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].MovementCount != top[j].MovementCount {
			return top[i].MovementCount > top[j].MovementCount
		}
		if top[i].TotalQuantityMoved != top[j].TotalQuantityMoved {
			return top[i].TotalQuantityMoved > top[j].TotalQuantityMoved
		}
		return top[i].SKU < top[j].SKU
	})
	if len(top) > topProductsN {
		top = top[:topProductsN]
	}

	return &dto.MovementAnalysisResponse{
		Analysis: dto.MovementAnalysisDTO{
			DateRange:       dto.DateRangeDTO{From: from, To: to},
			TotalMovements:  len(rows),
			MovementSummary: summary,
		},
		TopProducts: top,
		DailyTrends: dailyTrends(rows),
		GeneratedAt: now,
	}, nil
}
