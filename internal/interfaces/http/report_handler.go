package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ReportHandler reportes de inventario y sus exportaciones (protegido).
type ReportHandler struct {
	reports       *analytics.ReportUseCase
	exports       *analytics.ExportUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           zerolog.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(
	reports *analytics.ReportUseCase,
	exports *analytics.ExportUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	log zerolog.Logger,
) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports, replenishment: replenishment, log: log}
}

// Dashboard godoc
// @Summary      KPIs de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorizedCompany(c)
	}
	out, err := h.reports.Dashboard(c.Context(), companyID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// InventorySummary godoc
// @Summary      Resumen de inventario por producto, categoría y bodega
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        category_id   query  string  false  "Categoría"
// @Success      200  {object}  dto.InventorySummaryResponse
// @Router       /api/reports/inventory-summary [get]
func (h *ReportHandler) InventorySummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorizedCompany(c)
	}
	out, err := h.reports.InventorySummary(c.Context(), companyID, c.Query("warehouse_id"), c.Query("category_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// InventorySummaryXLSX godoc
// @Summary      Resumen de inventario en Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        category_id   query  string  false  "Categoría"
// @Success      200  {file}  file
// @Router       /api/reports/inventory-summary.xlsx [get]
func (h *ReportHandler) InventorySummaryXLSX(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorizedCompany(c)
	}
	data, err := h.exports.InventorySummaryXLSX(c.Context(), companyID, c.Query("warehouse_id"), c.Query("category_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, mimeXLSX, "inventario", "xlsx", data)
}

// LowStock godoc
// @Summary      Productos en o bajo el umbral de stock mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id          query  string  false  "Bodega"
// @Param        threshold_percentage  query  int     false  "Porcentaje del mínimo (por defecto 100)"
// @Success      200  {object}  dto.LowStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorizedCompany(c)
	}
	pct := analytics.DefaultThresholdPercentage
	if raw := c.Query("threshold_percentage"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, domain.CodeValidation, "threshold_percentage debe ser un entero")
		}
		pct = n
	}
	out, err := h.reports.LowStock(c.Context(), companyID, c.Query("warehouse_id"), pct)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MovementAnalysis godoc
// @Summary      Análisis de movimientos por tipo, producto y día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date_from      query  string  false  "YYYY-MM-DD o RFC3339 (por defecto hace 30 días)"
// @Param        date_to        query  string  false  "YYYY-MM-DD (inclusivo) o RFC3339"
// @Param        product_id     query  string  false  "Producto"
// @Param        movement_type  query  string  false  "in | out | adjustment | transfer"
// @Success      200  {object}  dto.MovementAnalysisResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movement-analysis [get]
func (h *ReportHandler) MovementAnalysis(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorizedCompany(c)
	}
	from, err := parseDateParam(c, "date_from", false)
	if err != nil {
		return writeError(c, h.log, err)
	}
	to, err := parseDateParam(c, "date_to", true)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.reports.MovementAnalysis(c.Context(), companyID, analytics.MovementAnalysisQuery{
		From:      from,
		To:        to,
		ProductID: c.Query("product_id"),
		Type:      c.Query("movement_type"),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Valuation godoc
// @Summary      Valorización del inventario a costo y a precio de venta
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega"
// @Success      200  {object}  dto.ValuationResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorizedCompany(c)
	}
	out, err := h.reports.Valuation(c.Context(), companyID, c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ValuationPDF godoc
// @Summary      Valorización del inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse_id  query  string  false  "Bodega"
// @Success      200  {file}  file
// @Router       /api/reports/valuation.pdf [get]
func (h *ReportHandler) ValuationPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorizedCompany(c)
	}
	data, err := h.exports.ValuationPDF(c.Context(), companyID, c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, mimePDF, "valorizacion", "pdf", data)
}

// Replenishment godoc
// @Summary      Lista de reposición sugerida
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega (vacío = stock global)"
// @Success      200  {object}  dto.ReplenishmentResponse
// @Router       /api/reports/replenishment [get]
func (h *ReportHandler) Replenishment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorizedCompany(c)
	}
	list, err := h.replenishment.GenerateReplenishmentList(c.Context(), companyID, c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ReplenishmentResponse{Total: len(list), Replenishments: list})
}

func sendFile(c *fiber.Ctx, mime, name, ext string, data []byte) error {
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s_%s.%s"`, name, time.Now().UTC().Format("20060102"), ext))
	return c.Send(data)
}
