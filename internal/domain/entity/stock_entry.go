package entity

import "time"

// StockEntry es la fila del ledger para (empresa, producto, bodega).
// Se crea al primer movimiento y solo la modifica el motor de movimientos.
type StockEntry struct {
	ID               string
	CompanyID        string
	ProductID        string
	WarehouseID      string
	QuantityOnHand   int64
	QuantityReserved int64
	LastMovementAt   *time.Time
	LastCountedAt    *time.Time // último conteo físico (ADJUSTMENT)
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// QuantityAvailable devuelve on_hand - reserved. Puede ser negativo si las reservas superan el stock.
func (e *StockEntry) QuantityAvailable() int64 {
	return e.QuantityOnHand - e.QuantityReserved
}
