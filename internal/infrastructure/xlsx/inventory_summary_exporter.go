// Package xlsx exporta el resumen de inventario a Excel con excelize.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
)

// Hojas del libro exportado.
const (
	SheetDetail      = "Detalle"
	SheetByCategory  = "Por categoría"
	SheetByWarehouse = "Por bodega"
	SheetSummary     = "Resumen"
)

var detailHeader = []interface{}{
	"SKU", "Producto", "Categoría", "Bodega", "En mano", "Reservado", "Disponible",
	"Precio costo", "Precio venta", "Valor costo", "Valor venta",
}

var groupHeader = []interface{}{"Nombre", "Ítems", "Cantidad", "Valor costo", "Valor venta"}

// InventorySummaryExporter genera el .xlsx del resumen de inventario.
type InventorySummaryExporter struct{}

// NewInventorySummaryExporter construye el exportador.
func NewInventorySummaryExporter() *InventorySummaryExporter { return &InventorySummaryExporter{} }

// ExportInventorySummary devuelve el libro con cuatro hojas: detalle, agregados y totales.
// Los montos se escriben como números (no texto) para que el usuario pueda operar con ellos.
func (e *InventorySummaryExporter) ExportInventorySummary(ctx context.Context, report *dto.InventorySummaryResponse) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetDetail); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for _, name := range []string{SheetByCategory, SheetByWarehouse, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	// Detalle
	rows := make([][]interface{}, 0, len(report.DetailedItems))
	for _, it := range report.DetailedItems {
		rows = append(rows, []interface{}{
			it.SKU, it.ProductName, it.Category, it.Warehouse,
			it.QuantityOnHand, it.QuantityReserved, it.QuantityAvailable,
			nullableFloat(it.CostPrice.Valid, it.CostPrice.Decimal.InexactFloat64()),
			nullableFloat(it.SellingPrice.Valid, it.SellingPrice.Decimal.InexactFloat64()),
			it.TotalCostValue.InexactFloat64(), it.TotalSellingValue.InexactFloat64(),
		})
	}
	if err := writeTable(f, SheetDetail, detailHeader, rows, bold, money, "H", "K"); err != nil {
		return nil, err
	}

	// Agregados
	for sheet, groups := range map[string][]dto.GroupTotalsDTO{
		SheetByCategory:  report.ByCategory,
		SheetByWarehouse: report.ByWarehouse,
	} {
		rows := make([][]interface{}, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, []interface{}{
				g.Name, g.Items, g.TotalQuantity, g.TotalCostValue.InexactFloat64(), g.TotalSellingValue.InexactFloat64(),
			})
		}
		if err := writeTable(f, sheet, groupHeader, rows, bold, money, "D", "E"); err != nil {
			return nil, err
		}
	}

	// Totales
	s := report.Summary
	totals := [][]interface{}{
		{"Ítems", s.TotalItems},
		{"Cantidad total", s.TotalQuantity},
		{"Valor costo", s.TotalCostValue.InexactFloat64()},
		{"Valor venta", s.TotalSellingValue.InexactFloat64()},
		{"Utilidad potencial", s.PotentialProfit.InexactFloat64()},
		{"Generado (UTC)", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
	}
	for i, r := range totals {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &r); err != nil {
			return nil, fmt.Errorf("xlsx: escribir totales: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(totals)), bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo totales: %w", err)
	}
	if err := f.SetCellStyle(SheetSummary, "B3", "B5", money); err != nil {
		return nil, fmt.Errorf("xlsx: estilo totales: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTable escribe encabezado en negrita y filas; moneyFrom..moneyTo con formato numérico.
func writeTable(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, bold, money int, moneyFrom, moneyTo string) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: encabezado %s: %w", sheet, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("xlsx: estilo %s: %w", sheet, err)
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+2, sheet, err)
		}
	}
	if len(rows) > 0 {
		if err := f.SetCellStyle(sheet, moneyFrom+"2", fmt.Sprintf("%s%d", moneyTo, len(rows)+1), money); err != nil {
			return fmt.Errorf("xlsx: estilo montos %s: %w", sheet, err)
		}
	}
	return nil
}

// nullableFloat deja la celda vacía cuando el precio se desconoce.
func nullableFloat(valid bool, v float64) interface{} {
	if !valid {
		return nil
	}
	return v
}
