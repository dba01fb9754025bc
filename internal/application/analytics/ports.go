// Package analytics contiene el agregador de reportes de inventario: dashboard,
// resumen, stock bajo, análisis de movimientos y valorización.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// SnapshotRunner ejecuta fn sobre una vista consistente y de solo lectura.
// Todas las consultas de un mismo reporte ven el mismo estado (sin movimientos a medias).
type SnapshotRunner interface {
	ReadSnapshot(ctx context.Context, fn func(repo repository.ReportRepository) error) error
}

// ValuationPDFGenerator exporta la valorización a PDF (implementado en infrastructure/pdf).
type ValuationPDFGenerator interface {
	GenerateValuationPDF(ctx context.Context, companyID string, summary dto.ValuationSummaryDTO, items []dto.ValuationItemDTO, generatedAt time.Time) ([]byte, error)
}

// InventorySummaryExporter exporta el resumen de inventario a XLSX (infrastructure/xlsx).
type InventorySummaryExporter interface {
	ExportInventorySummary(ctx context.Context, report *dto.InventorySummaryResponse) ([]byte, error)
}
