package inventory

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// AlertUseCase feed de alertas de la empresa.
type AlertUseCase struct {
	repo repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo}
}

// List devuelve las alertas más recientes primero.
func (uc *AlertUseCase) List(ctx context.Context, companyID string, unreadOnly bool, page dto.PageRequest) (*dto.AlertListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, companyID, repository.AlertFilter{
		UnreadOnly: unreadOnly,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAlertResponse(a))
	}
	return &dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// MarkRead marca la alerta como leída. Es idempotente.
func (uc *AlertUseCase) MarkRead(ctx context.Context, companyID, id string) (*dto.AlertResponse, error) {
	a, err := uc.repo.MarkRead(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toAlertResponse(a), nil
}
