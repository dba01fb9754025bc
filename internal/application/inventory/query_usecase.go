package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el ledger y el historial de movimientos.
type QueryUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(stockRepo repository.StockRepository, movRepo repository.MovementRepository) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// StockQuery filtros de GET /api/inventory.
type StockQuery struct {
	WarehouseID  string
	ProductID    string
	LowStockOnly bool
	Page         dto.PageRequest
}

// ListStock lista las filas del ledger de la empresa.
func (uc *QueryUseCase) ListStock(ctx context.Context, companyID string, q StockQuery) (*dto.StockListResponse, error) {
	q.Page.DefaultPage()
	list, total, err := uc.stockRepo.List(ctx, companyID, repository.StockFilter{
		WarehouseID:  q.WarehouseID,
		ProductID:    q.ProductID,
		LowStockOnly: q.LowStockOnly,
		Limit:        q.Page.Limit,
		Offset:       q.Page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toStockResponse(e))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Page.Limit, Offset: q.Page.Offset, Total: total},
	}, nil
}

// MovementQuery filtros de GET /api/inventory/movements.
type MovementQuery struct {
	ProductID   string
	WarehouseID string
	Type        string
	From        *time.Time
	To          *time.Time
	Page        dto.PageRequest
}

// ListMovements devuelve el historial de movimientos, más recientes primero.
func (uc *QueryUseCase) ListMovements(ctx context.Context, companyID string, q MovementQuery) (*dto.MovementListResponse, error) {
	q.Type = strings.ToLower(strings.TrimSpace(q.Type))
	if q.Type != "" && !entity.ValidMovementType(q.Type) {
		return nil, fmt.Errorf("%w: movement_type %q", domain.ErrInvalidInput, q.Type)
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return nil, fmt.Errorf("%w: date_from posterior a date_to", domain.ErrInvalidInput)
	}
	q.Page.DefaultPage()
	list, total, err := uc.movRepo.List(ctx, companyID, repository.MovementFilter{
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		Type:        q.Type,
		From:        q.From,
		To:          q.To,
		Limit:       q.Page.Limit,
		Offset:      q.Page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Page.Limit, Offset: q.Page.Offset, Total: total},
	}, nil
}
