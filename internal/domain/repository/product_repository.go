package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ProductFilter filtros del listado de productos. Campos vacíos = sin filtro.
type ProductFilter struct {
	Search       string // nombre, SKU o descripción; sin distinguir mayúsculas
	CategoryID   string
	IsActive     *bool
	LowStockOnly bool // alguna fila del ledger con on_hand <= mínimo
	Limit        int
	Offset       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create devuelve domain.ErrConflict si el SKU ya existe en la empresa.
	Create(ctx context.Context, product *entity.Product) error
	// Update reemplaza los campos editables (el SKU no cambia); domain.ErrNotFound si no es de la empresa.
	Update(ctx context.Context, product *entity.Product) error
	// GetByID devuelve nil, nil si el producto no existe en la empresa.
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	// ListByCompany devuelve la página pedida y el total que cumple el filtro.
	ListByCompany(ctx context.Context, companyID string, f ProductFilter) ([]*entity.Product, int, error)
}
