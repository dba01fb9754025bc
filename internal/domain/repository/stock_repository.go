package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// StockFilter filtros para listar el ledger de una empresa.
type StockFilter struct {
	WarehouseID  string
	ProductID    string
	LowStockOnly bool // on_hand <= minimum_stock_level del producto
	Limit        int  // 0 = sin límite
	Offset       int
}

// StockRepository define el puerto de persistencia del ledger (DIP).
// GetOrCreateForUpdate y Update solo tienen sentido dentro de una transacción.
type StockRepository interface {
	// GetOrCreateForUpdate devuelve la fila del ledger bloqueada para escritura,
	// creándola con cantidades en cero si aún no existe.
	GetOrCreateForUpdate(ctx context.Context, companyID, productID, warehouseID string) (*entity.StockEntry, error)
	Update(ctx context.Context, entry *entity.StockEntry) error
	List(ctx context.Context, companyID string, filter StockFilter) ([]*entity.StockEntry, int, error)
}
