package analytics

import (
	"context"
	"fmt"
)

// ExportUseCase genera los archivos descargables de los reportes.
type ExportUseCase struct {
	reports *ReportUseCase
	pdf     ValuationPDFGenerator
	xlsx    InventorySummaryExporter
}

// NewExportUseCase construye el caso de uso de exportación.
func NewExportUseCase(reports *ReportUseCase, pdf ValuationPDFGenerator, xlsx InventorySummaryExporter) *ExportUseCase {
	return &ExportUseCase{reports: reports, pdf: pdf, xlsx: xlsx}
}

// ValuationPDF exporta la valorización completa (todas las filas, no solo el top).
func (uc *ExportUseCase) ValuationPDF(ctx context.Context, companyID, warehouseID string) ([]byte, error) {
	items, err := uc.reports.ValuationItems(ctx, companyID, warehouseID)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdf.GenerateValuationPDF(ctx, companyID, summarizeValuation(items), items, uc.reports.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("generar pdf de valorización: %w", err)
	}
	return data, nil
}

// InventorySummaryXLSX exporta el resumen de inventario con los mismos filtros del endpoint JSON.
func (uc *ExportUseCase) InventorySummaryXLSX(ctx context.Context, companyID, warehouseID, categoryID string) ([]byte, error) {
	report, err := uc.reports.InventorySummary(ctx, companyID, warehouseID, categoryID)
	if err != nil {
		return nil, err
	}
	data, err := uc.xlsx.ExportInventorySummary(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("generar xlsx de inventario: %w", err)
	}
	return data, nil
}
