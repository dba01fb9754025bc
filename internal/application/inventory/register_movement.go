package inventory

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	input := MovementInputDTO{
		CompanyID:      companyID,
		UserID:         userID,
		ProductID:      in.ProductID,
		WarehouseID:    in.WarehouseID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		UnitCost:       in.UnitCost,
		ReferenceType:  in.ReferenceType,
		ReferenceID:    in.ReferenceID,
		Notes:          in.Notes,
		MovementDate:   in.MovementDate,
		IdempotencyKey: in.IdempotencyKey,
	}
	res, err := uc.RegisterMovement(ctx, input)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterMovementResponse{
		Movement: toMovementResponse(res.Movement),
		Stock:    toStockResponse(res.Stock),
		Alert:    toAlertResponse(res.Alert),
		Replayed: res.Replayed,
	}, nil
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		CompanyID:      m.CompanyID,
		ProductID:      m.ProductID,
		WarehouseID:    m.WarehouseID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		UnitCost:       m.UnitCost,
		ReferenceType:  m.ReferenceType,
		ReferenceID:    m.ReferenceID,
		Notes:          m.Notes,
		UserID:         m.UserID,
		IdempotencyKey: m.IdempotencyKey,
		MovementDate:   m.MovementDate,
		CreatedAt:      m.CreatedAt,
	}
}

func toStockResponse(e *entity.StockEntry) dto.StockResponse {
	return dto.StockResponse{
		ID:                e.ID,
		ProductID:         e.ProductID,
		WarehouseID:       e.WarehouseID,
		QuantityOnHand:    e.QuantityOnHand,
		QuantityReserved:  e.QuantityReserved,
		QuantityAvailable: e.QuantityAvailable(),
		LastMovementAt:    e.LastMovementAt,
		LastCountedAt:     e.LastCountedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func toAlertResponse(a *entity.Alert) *dto.AlertResponse {
	if a == nil {
		return nil
	}
	return &dto.AlertResponse{
		ID:         a.ID,
		AlertType:  a.AlertType,
		Title:      a.Title,
		Message:    a.Message,
		Severity:   a.Severity,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		IsRead:     a.IsRead,
		UserID:     a.UserID,
		ExpiresAt:  a.ExpiresAt,
		CreatedAt:  a.CreatedAt,
	}
}
