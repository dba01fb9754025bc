package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// Options reglas configurables del motor.
type Options struct {
	DedupLowStockAlerts  bool          // alerta solo al cruzar el umbral
	EnforceReservedBound bool          // on_hand no puede quedar por debajo de lo reservado
	AlertTTL             time.Duration // 0 = las alertas no expiran
}

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (in, out, adjustment, transfer) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	opts          Options
	log           zerolog.Logger
	now           func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	opts Options,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		opts:          opts,
		log:           log,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *RegisterMovementUseCase) WithClock(now func() time.Time) *RegisterMovementUseCase {
	uc.now = now
	return uc
}

// MovementInputDTO entrada para registrar un movimiento de inventario.
// Quantity siempre > 0; en adjustment es el conteo absoluto resultante.
type MovementInputDTO struct {
	CompanyID      string
	UserID         string
	ProductID      string
	WarehouseID    string
	Type           string
	Quantity       int64
	UnitCost       *decimal.Decimal
	ReferenceType  string
	ReferenceID    string
	Notes          string
	MovementDate   *time.Time // nil = momento del registro
	IdempotencyKey string
}

// MovementResult resultado de un movimiento aceptado.
type MovementResult struct {
	Movement *entity.Movement
	Stock    *entity.StockEntry
	Alert    *entity.Alert // nil si no se disparó alerta
	Replayed bool          // la idempotency key ya existía; no se aplicó nada
}

// RegisterMovement valida la entrada, inicia una transacción, bloquea la fila del ledger,
// aplica la regla según tipo, guarda el movimiento y evalúa la alerta de stock bajo.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*MovementResult, error) {
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	if err := validateMovement(input); err != nil {
		return nil, err
	}

	// Producto y bodega deben existir dentro de la empresa
	product, err := uc.productRepo.GetByID(ctx, input.CompanyID, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, input.ProductID)
	}
	warehouse, err := uc.warehouseRepo.GetByID(ctx, input.CompanyID, input.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("buscar bodega: %w", err)
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, input.WarehouseID)
	}

	result, err := uc.apply(ctx, input, product, warehouse)
	// Dos peticiones con la misma llave pueden competir: la perdedora choca con el
	// índice único y se reintenta una vez para devolver el movimiento ganador
	// (o CONFLICT si el ganador trae otro contenido).
	if err != nil && input.IdempotencyKey != "" && errors.Is(err, domain.ErrConflict) {
		result, err = uc.apply(ctx, input, product, warehouse)
	}
	if err != nil {
		return nil, err
	}

	if result.Replayed {
		uc.log.Debug().
			Str("company_id", input.CompanyID).
			Str("idempotency_key", input.IdempotencyKey).
			Str("movement_id", result.Movement.ID).
			Msg("movimiento repetido, se devuelve el original")
		return result, nil
	}
	uc.log.Debug().
		Str("company_id", input.CompanyID).
		Str("movement_id", result.Movement.ID).
		Str("type", result.Movement.Type).
		Int64("quantity", result.Movement.Quantity).
		Int64("on_hand", result.Stock.QuantityOnHand).
		Msg("movimiento registrado")
	if result.Alert != nil {
		uc.log.Info().
			Str("company_id", input.CompanyID).
			Str("alert_id", result.Alert.ID).
			Str("product_id", product.ID).
			Str("warehouse_id", warehouse.ID).
			Msg("alerta de stock bajo generada")
	}
	return result, nil
}

func (uc *RegisterMovementUseCase) apply(
	ctx context.Context,
	input MovementInputDTO,
	product *entity.Product,
	warehouse *entity.Warehouse,
) (*MovementResult, error) {
	now := uc.now().UTC()
	var result *MovementResult

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error {
		if input.IdempotencyKey != "" {
			existing, err := movRepo.GetByIdempotencyKey(ctx, input.CompanyID, input.IdempotencyKey)
			if err != nil {
				return err
			}
			if existing != nil {
				if !samePayload(existing, input) {
					return fmt.Errorf("%w: idempotency_key %q ya se usó con otro movimiento", domain.ErrConflict, input.IdempotencyKey)
				}
				stock, err := stockRepo.GetOrCreateForUpdate(ctx, existing.CompanyID, existing.ProductID, existing.WarehouseID)
				if err != nil {
					return err
				}
				result = &MovementResult{Movement: existing, Stock: stock, Replayed: true}
				return nil
			}
		}

		// Bloquea (o crea) la fila del ledger para evitar condiciones de carrera
		stock, err := stockRepo.GetOrCreateForUpdate(ctx, input.CompanyID, input.ProductID, input.WarehouseID)
		if err != nil {
			return err
		}
		previous := stock.QuantityOnHand
		next, err := domaininv.NextOnHand(input.Type, previous, input.Quantity)
		if err != nil {
			return err
		}
		if uc.opts.EnforceReservedBound && next < previous {
			if err := domaininv.CheckReservedBound(next, stock.QuantityReserved); err != nil {
				return err
			}
		}

		stock.QuantityOnHand = next
		stock.LastMovementAt = &now
		if input.Type == entity.MovementTypeADJUSTMENT {
			stock.LastCountedAt = &now
		}
		stock.UpdatedAt = now
		if err := stockRepo.Update(ctx, stock); err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:             uuid.New().String(),
			CompanyID:      input.CompanyID,
			ProductID:      input.ProductID,
			WarehouseID:    input.WarehouseID,
			Type:           input.Type,
			Quantity:       input.Quantity,
			ReferenceType:  input.ReferenceType,
			ReferenceID:    input.ReferenceID,
			Notes:          input.Notes,
			UserID:         input.UserID,
			IdempotencyKey: input.IdempotencyKey,
			MovementDate:   now,
			CreatedAt:      now,
		}
		if input.UnitCost != nil {
			mov.UnitCost = decimal.NewNullDecimal(*input.UnitCost)
		}
		if input.MovementDate != nil {
			mov.MovementDate = input.MovementDate.UTC()
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		// Alerta sobre el estado posterior, en la misma transacción
		alert := domaininv.LowStockAlert(product, warehouse, previous, next, uc.opts.DedupLowStockAlerts)
		if alert != nil {
			alert.ID = uuid.New().String()
			alert.UserID = input.UserID
			alert.CreatedAt = now
			if uc.opts.AlertTTL > 0 {
				exp := now.Add(uc.opts.AlertTTL)
				alert.ExpiresAt = &exp
			}
			if err := alertRepo.Create(ctx, alert); err != nil {
				return err
			}
		}

		result = &MovementResult{Movement: mov, Stock: stock, Alert: alert}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// samePayload compara lo que define el efecto del movimiento sobre el ledger.
func samePayload(m *entity.Movement, input MovementInputDTO) bool {
	return m.ProductID == input.ProductID &&
		m.WarehouseID == input.WarehouseID &&
		m.Type == input.Type &&
		m.Quantity == input.Quantity
}

func validateMovement(input MovementInputDTO) error {
	if input.CompanyID == "" || input.UserID == "" {
		return fmt.Errorf("%w: empresa y usuario requeridos", domain.ErrInvalidInput)
	}
	if input.ProductID == "" || input.WarehouseID == "" {
		return fmt.Errorf("%w: product_id y warehouse_id requeridos", domain.ErrInvalidInput)
	}
	if !entity.ValidMovementType(input.Type) {
		return fmt.Errorf("%w: movement_type debe ser in, out, adjustment o transfer", domain.ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return fmt.Errorf("%w: unit_cost no puede ser negativo", domain.ErrInvalidInput)
	}
	if len(input.IdempotencyKey) > 128 {
		return fmt.Errorf("%w: idempotency_key demasiado larga", domain.ErrInvalidInput)
	}
	return nil
}
