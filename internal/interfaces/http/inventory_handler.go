package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
)

// InventoryHandler movimientos y consulta del ledger (protegido).
type InventoryHandler struct {
	registerMovement *inventory.RegisterMovementUseCase
	queries          *inventory.QueryUseCase
	log              zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	registerMovement *inventory.RegisterMovementUseCase,
	queries *inventory.QueryUseCase,
	log zerolog.Logger,
) *InventoryHandler {
	return &InventoryHandler{registerMovement: registerMovement, queries: queries, log: log}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Tipos: in, out, adjustment (conteo absoluto), transfer (salida de la bodega origen).
// @Description  Con idempotency_key repetida devuelve el movimiento original con replayed=true (200).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Success      200   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorizedCompany(c)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.registerMovement.RegisterMovementFromRequest(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	status := fiber.StatusCreated
	if out.Replayed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Producto"
// @Param        warehouse_id   query  string  false  "Bodega"
// @Param        movement_type  query  string  false  "in | out | adjustment | transfer"
// @Param        date_from      query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        date_to        query  string  false  "YYYY-MM-DD (inclusivo) o RFC3339"
// @Param        limit          query  int     false  "Límite (máx 100)"
// @Param        offset         query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorizedCompany(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros de paginación inválidos")
	}
	from, err := parseDateParam(c, "date_from", false)
	if err != nil {
		return writeError(c, h.log, err)
	}
	to, err := parseDateParam(c, "date_to", true)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.queries.ListMovements(c.Context(), companyID, inventory.MovementQuery{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		Type:        c.Query("movement_type"),
		From:        from,
		To:          to,
		Page:        page,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListStock godoc
// @Summary      Ledger de stock por producto y bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id    query  string  false  "Bodega"
// @Param        product_id      query  string  false  "Producto"
// @Param        low_stock_only  query  bool    false  "Solo filas en o bajo el mínimo"
// @Param        limit           query  int     false  "Límite (máx 100)"
// @Param        offset          query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorizedCompany(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros de paginación inválidos")
	}
	out, err := h.queries.ListStock(c.Context(), companyID, inventory.StockQuery{
		WarehouseID:  c.Query("warehouse_id"),
		ProductID:    c.Query("product_id"),
		LowStockOnly: c.QueryBool("low_stock_only", false),
		Page:         page,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
