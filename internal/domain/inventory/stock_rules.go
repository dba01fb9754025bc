package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// NextOnHand calcula la nueva cantidad en mano según el tipo de movimiento (servicio de dominio).
//   - in:         actual + cantidad (error si desborda int64)
//   - out:        actual - cantidad (error si no alcanza)
//   - transfer:   igual que out; solo se registra la salida de la bodega origen
//   - adjustment: cantidad absoluta (conteo físico)
func NextOnHand(movementType string, current, quantity int64) (int64, error) {
	switch movementType {
	case entity.MovementTypeIN:
		if quantity > math.MaxInt64-current {
			return current, fmt.Errorf("%w: la entrada de %d desborda el stock actual %d", domain.ErrInvalidInput, quantity, current)
		}
		return current + quantity, nil
	case entity.MovementTypeOUT, entity.MovementTypeTRANSFER:
		if current < quantity {
			return current, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, current, quantity)
		}
		return current - quantity, nil
	case entity.MovementTypeADJUSTMENT:
		return quantity, nil
	}
	return current, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, movementType)
}

// CheckReservedBound valida que el stock resultante cubra las reservas vigentes.
func CheckReservedBound(onHand, reserved int64) error {
	if onHand < reserved {
		return fmt.Errorf("%w: stock resultante %d menor que lo reservado %d", domain.ErrInsufficientStock, onHand, reserved)
	}
	return nil
}

// IsLowStock indica si la cantidad está en o por debajo del nivel mínimo del producto.
func IsLowStock(onHand, minimum int64) bool {
	return onHand <= minimum
}

// LowStockAlert evalúa la regla de stock bajo sobre el estado posterior al movimiento.
// Con dedup=true solo alerta cuando el movimiento cruza el umbral (previous > mínimo).
// Devuelve nil si no corresponde alerta; el llamador asigna ID y fechas.
func LowStockAlert(product *entity.Product, warehouse *entity.Warehouse, previous, current int64, dedup bool) *entity.Alert {
	if !IsLowStock(current, product.MinimumStockLevel) {
		return nil
	}
	if dedup && IsLowStock(previous, product.MinimumStockLevel) {
		return nil
	}
	msg := fmt.Sprintf("El producto %s (SKU: %s) tiene stock bajo en %s. Stock actual: %d, nivel mínimo: %d",
		product.Name, product.SKU, warehouse.Name, current, product.MinimumStockLevel)
	return &entity.Alert{
		CompanyID:  product.CompanyID,
		AlertType:  entity.AlertTypeLowStock,
		Title:      "Stock bajo: " + product.Name,
		Message:    msg,
		Severity:   entity.SeverityWarning,
		EntityType: entity.EntityTypeProduct,
		EntityID:   product.ID,
	}
}
