package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// CategoryRepository lectura de categorías (se administran fuera de esta API).
type CategoryRepository interface {
	// GetByID devuelve nil, nil si la categoría no existe en la empresa.
	GetByID(ctx context.Context, companyID, id string) (*entity.Category, error)
}
