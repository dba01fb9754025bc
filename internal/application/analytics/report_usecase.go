package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

const (
	uncategorized      = "Sin categoría"
	dateLayout         = "2006-01-02"
	dashboardTopN      = 5  // productos en el widget del dashboard
	recentActivityN    = 10 // movimientos en el feed del dashboard
	topProductsN       = 10
	topValuedItemsN    = 10
	defaultWindowDays  = 30
	recentWindowDays   = 7
	criticalRatioQuart = 4 // crítico si on_hand * 4 <= mínimo (ratio <= 0.25)
)

var hundred = decimal.NewFromInt(100)

// ReportUseCase agregador de reportes. Cada llamada lee una única instantánea.
type ReportUseCase struct {
	snap SnapshotRunner
	now  func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(snap SnapshotRunner) *ReportUseCase {
	return &ReportUseCase{snap: snap, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

func categoryName(p repository.StockPosition) string {
	if p.CategoryName == "" {
		return uncategorized
	}
	return p.CategoryName
}

// valueOf devuelve qty * price, o cero si el precio se desconoce.
func valueOf(qty int64, price decimal.NullDecimal) decimal.Decimal {
	if !price.Valid {
		return decimal.Zero
	}
	return price.Decimal.Mul(decimal.NewFromInt(qty))
}

func priceOrZero(price decimal.NullDecimal) decimal.Decimal {
	if !price.Valid {
		return decimal.Zero
	}
	return price.Decimal
}
