package analytics_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Datos de prueba
//
//	Alicate (A, Herramientas, costo 10, venta 15, mínimo 20)
//	  Central: in 100 (-2d, costo 10), out 96 (-1d)   → 4
//	  Norte:   in 15 (-40d)                           → 15
//	Broca (B, sin categoría, sin costo, venta 5, mínimo 0)
//	  Central: in 3                                   → 3
//	  Norte:   in 2, out 2                            → 0
//	Cincel (C, Herramientas, costo 4, venta 6, mínimo 10, INACTIVO)
//	  Central: in 5                                   → 5
// ──────────────────────────────────────────────────────────────────────────────

const (
	company  = "company-1"
	catTools = "cat-tools"
	pA       = "p-alicate"
	pB       = "p-broca"
	pC       = "p-cincel"
	wCentral = "w-central"
	wNorte   = "w-norte"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func seedReports(t *testing.T) (*memory.Store, *analytics.ReportUseCase) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, store.PutCategory(ctx, entity.Category{ID: catTools, CompanyID: company, Name: "Herramientas"}))
	products := []*entity.Product{
		{ID: pA, CompanyID: company, CategoryID: catTools, SKU: "A", Name: "Alicate", CostPrice: dec("10"), SellingPrice: dec("15"), MinimumStockLevel: 20, IsActive: true},
		{ID: pB, CompanyID: company, SKU: "B", Name: "Broca", SellingPrice: dec("5"), IsActive: true},
		{ID: pC, CompanyID: company, CategoryID: catTools, SKU: "C", Name: "Cincel", CostPrice: dec("4"), SellingPrice: dec("6"), MinimumStockLevel: 10},
	}
	for _, p := range products {
		require.NoError(t, store.Products().Create(ctx, p))
	}
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{ID: wCentral, CompanyID: company, Name: "Central", Code: "CEN", IsActive: true}))
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{ID: wNorte, CompanyID: company, Name: "Norte", Code: "NOR", IsActive: true}))

	engine := inventory.NewRegisterMovementUseCase(store, store.Products(), store.Warehouses(), inventory.Options{}, zerolog.Nop()).
		WithClock(func() time.Time { return now })

	ten := decimal.NewFromInt(10)
	daysAgo := func(d int) *time.Time {
		v := now.AddDate(0, 0, -d)
		return &v
	}
	moves := []inventory.MovementInputDTO{
		{ProductID: pA, WarehouseID: wCentral, Type: entity.MovementTypeIN, Quantity: 100, UnitCost: &ten, MovementDate: daysAgo(2)},
		{ProductID: pA, WarehouseID: wCentral, Type: entity.MovementTypeOUT, Quantity: 96, MovementDate: daysAgo(1)},
		{ProductID: pA, WarehouseID: wNorte, Type: entity.MovementTypeIN, Quantity: 15, MovementDate: daysAgo(40)},
		{ProductID: pB, WarehouseID: wCentral, Type: entity.MovementTypeIN, Quantity: 3},
		{ProductID: pB, WarehouseID: wNorte, Type: entity.MovementTypeIN, Quantity: 2},
		{ProductID: pB, WarehouseID: wNorte, Type: entity.MovementTypeOUT, Quantity: 2},
		{ProductID: pC, WarehouseID: wCentral, Type: entity.MovementTypeIN, Quantity: 5},
	}
	for _, m := range moves {
		m.CompanyID = company
		m.UserID = "user-1"
		_, err := engine.RegisterMovement(ctx, m)
		require.NoError(t, err)
	}

	reports := analytics.NewReportUseCase(store).WithClock(func() time.Time { return now })
	return store, reports
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), append([]interface{}{"esperado %s, obtenido %s", want, got.String()}, msgAndArgs...)...)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard(t *testing.T) {
	_, reports := seedReports(t)

	d, err := reports.Dashboard(context.Background(), company)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Summary.TotalProducts, "Cincel está inactivo")
	assert.Equal(t, 2, d.Summary.TotalWarehouses)
	assert.Equal(t, 3, d.Summary.LowStockItems)
	assertDec(t, "190", d.Summary.TotalInventoryValue)
	assert.Equal(t, 6, d.Summary.RecentMovements, "el ingreso de hace 40 días queda fuera")

	require.Len(t, d.TopProducts, 2)
	assert.Equal(t, "A", d.TopProducts[0].SKU)
	assert.Equal(t, int64(19), d.TopProducts[0].TotalQuantity)
	assert.Equal(t, int64(3), d.TopProducts[1].TotalQuantity)

	require.Len(t, d.RecentActivity, 7)
	assert.Equal(t, "A", d.RecentActivity[6].SKU, "el más antiguo queda al final")
	assert.Equal(t, "Norte", d.RecentActivity[6].WarehouseName)

	require.Len(t, d.MovementTrends, 4)
	assert.Equal(t, "2026-03-08", d.MovementTrends[0].Date)
	assert.Equal(t, entity.MovementTypeIN, d.MovementTrends[0].Type)
	assert.Equal(t, "2026-03-09", d.MovementTrends[1].Date)
	assert.Equal(t, entity.MovementTypeOUT, d.MovementTrends[1].Type)
	assert.Equal(t, "2026-03-10", d.MovementTrends[2].Date)
	assert.Equal(t, entity.MovementTypeIN, d.MovementTrends[2].Type)
	assert.Equal(t, 3, d.MovementTrends[2].Count)
	assert.Equal(t, entity.MovementTypeOUT, d.MovementTrends[3].Type)
}

func TestDashboard_EmpresaSinDatos(t *testing.T) {
	_, reports := seedReports(t)
	d, err := reports.Dashboard(context.Background(), "otra")
	require.NoError(t, err)
	assert.Zero(t, d.Summary.TotalProducts)
	assert.True(t, d.Summary.TotalInventoryValue.IsZero())
	assert.Empty(t, d.TopProducts)
	assert.Empty(t, d.RecentActivity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen de inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventorySummary(t *testing.T) {
	_, reports := seedReports(t)

	s, err := reports.InventorySummary(context.Background(), company, "", "")
	require.NoError(t, err)

	assert.Equal(t, 5, s.Summary.TotalItems)
	assert.Equal(t, int64(27), s.Summary.TotalQuantity)
	assertDec(t, "210", s.Summary.TotalCostValue)
	assertDec(t, "330", s.Summary.TotalSellingValue)
	assertDec(t, "120", s.Summary.PotentialProfit)

	require.Len(t, s.DetailedItems, 5)
	first := s.DetailedItems[0]
	assert.Equal(t, "Alicate", first.ProductName)
	assert.Equal(t, "Central", first.Warehouse)
	assert.Equal(t, "Herramientas", first.Category)
	broca := s.DetailedItems[2]
	assert.Equal(t, "Broca", broca.ProductName)
	assert.Equal(t, "Sin categoría", broca.Category)
	assert.False(t, broca.CostPrice.Valid)
	assert.True(t, broca.TotalCostValue.IsZero())

	require.Len(t, s.ByCategory, 2)
	assert.Equal(t, "Herramientas", s.ByCategory[0].Name)
	assert.Equal(t, 3, s.ByCategory[0].Items)
	assert.Equal(t, int64(24), s.ByCategory[0].TotalQuantity)
	assert.Equal(t, "Sin categoría", s.ByCategory[1].Name)
	assert.Equal(t, 2, s.ByCategory[1].Items)

	require.Len(t, s.ByWarehouse, 2)
	assert.Equal(t, "Central", s.ByWarehouse[0].Name)
	assert.Equal(t, int64(12), s.ByWarehouse[0].TotalQuantity)
	assert.Equal(t, "Norte", s.ByWarehouse[1].Name)
	assert.Equal(t, int64(15), s.ByWarehouse[1].TotalQuantity)
}

func TestInventorySummary_Filtros(t *testing.T) {
	_, reports := seedReports(t)
	ctx := context.Background()

	byCat, err := reports.InventorySummary(ctx, company, "", catTools)
	require.NoError(t, err)
	assert.Equal(t, 3, byCat.Summary.TotalItems)

	byWh, err := reports.InventorySummary(ctx, company, wNorte, "")
	require.NoError(t, err)
	assert.Equal(t, 2, byWh.Summary.TotalItems)
	require.Len(t, byWh.ByWarehouse, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStock_CriticidadYOrden(t *testing.T) {
	_, reports := seedReports(t)

	r, err := reports.LowStock(context.Background(), company, "", analytics.DefaultThresholdPercentage)
	require.NoError(t, err)

	assert.Equal(t, 3, r.Summary.TotalLowStockItems)
	assert.Equal(t, 1, r.Summary.CriticalItems)
	assert.Equal(t, 2, r.Summary.WarningItems)
	require.Len(t, r.LowStockItems, 3)

	assert.Equal(t, "A", r.LowStockItems[0].SKU)
	assert.Equal(t, "Central", r.LowStockItems[0].Warehouse)
	assert.Equal(t, entity.SeverityCritical, r.LowStockItems[0].Criticality)
	assertDec(t, "0.2", r.LowStockItems[0].StockRatio)

	assert.Equal(t, "Norte", r.LowStockItems[1].Warehouse)
	assert.Equal(t, entity.SeverityWarning, r.LowStockItems[1].Criticality)
	assertDec(t, "0.75", r.LowStockItems[1].StockRatio)

	// Mínimo 0: sin división, siempre warning y al final
	last := r.LowStockItems[2]
	assert.Equal(t, "B", last.SKU)
	assert.Equal(t, int64(0), last.MinimumStockLevel)
	assert.True(t, last.StockRatio.IsZero())
	assert.Equal(t, entity.SeverityWarning, last.Criticality)
}

func TestLowStock_Umbral(t *testing.T) {
	_, reports := seedReports(t)
	ctx := context.Background()

	r, err := reports.LowStock(ctx, company, "", 50)
	require.NoError(t, err)
	require.Len(t, r.LowStockItems, 2)
	assert.Equal(t, 50, r.Summary.ThresholdPercentage)

	_, err = reports.LowStock(ctx, company, "", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Umbrales y cantidades cercanos al máximo de int64 no desbordan la comparación.
func TestLowStock_ValoresExtremos(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p-max", CompanyID: company, SKU: "MAX", Name: "Granel", MinimumStockLevel: math.MaxInt64, IsActive: true,
	}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p-dos", CompanyID: company, SKU: "DOS", Name: "Tornillo", MinimumStockLevel: 2, IsActive: true,
	}))
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{ID: wCentral, CompanyID: company, Name: "Central", Code: "CEN", IsActive: true}))
	engine := inventory.NewRegisterMovementUseCase(store, store.Products(), store.Warehouses(), inventory.Options{}, zerolog.Nop())
	for _, m := range []inventory.MovementInputDTO{
		{ProductID: "p-max", Quantity: math.MaxInt64 - 1},
		{ProductID: "p-dos", Quantity: 5},
	} {
		m.CompanyID, m.UserID, m.WarehouseID, m.Type = company, "user-1", wCentral, entity.MovementTypeIN
		_, err := engine.RegisterMovement(ctx, m)
		require.NoError(t, err)
	}
	reports := analytics.NewReportUseCase(store)

	r, err := reports.LowStock(ctx, company, "", analytics.DefaultThresholdPercentage)
	require.NoError(t, err)
	require.Len(t, r.LowStockItems, 1, "on_hand = máximo - 1 sigue bajo un mínimo igual al máximo")
	assert.Equal(t, "MAX", r.LowStockItems[0].SKU)
	assert.Equal(t, entity.SeverityWarning, r.LowStockItems[0].Criticality)

	r, err = reports.LowStock(ctx, company, "", math.MaxInt32)
	require.NoError(t, err)
	require.Len(t, r.LowStockItems, 2, "un umbral enorme incluye toda fila con mínimo > 0")
	assert.Equal(t, "MAX", r.LowStockItems[0].SKU, "ratio ~1 antes que ratio 2.5")
	assert.Equal(t, "DOS", r.LowStockItems[1].SKU)
	assertDec(t, "2.5", r.LowStockItems[1].StockRatio)
	assert.Equal(t, math.MaxInt32, r.Summary.ThresholdPercentage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Análisis de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementAnalysis_VentanaPorDefecto(t *testing.T) {
	_, reports := seedReports(t)

	a, err := reports.MovementAnalysis(context.Background(), company, analytics.MovementAnalysisQuery{})
	require.NoError(t, err)

	assert.Equal(t, now.AddDate(0, 0, -30), a.Analysis.DateRange.From)
	assert.Equal(t, now, a.Analysis.DateRange.To)
	assert.Equal(t, 6, a.Analysis.TotalMovements)

	in := a.Analysis.MovementSummary[entity.MovementTypeIN]
	assert.Equal(t, 4, in.Count)
	assert.Equal(t, int64(110), in.TotalQuantity)
	assertDec(t, "1000", in.TotalValue)
	out := a.Analysis.MovementSummary[entity.MovementTypeOUT]
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, int64(98), out.TotalQuantity)
	assert.True(t, out.TotalValue.IsZero())

	require.Len(t, a.TopProducts, 3)
	assert.Equal(t, "B", a.TopProducts[0].SKU)
	assert.Equal(t, 3, a.TopProducts[0].MovementCount)
	assert.Equal(t, "A", a.TopProducts[1].SKU)
	assert.Equal(t, int64(196), a.TopProducts[1].TotalQuantityMoved)

	require.NotEmpty(t, a.DailyTrends)
	assert.Equal(t, "2026-03-08", a.DailyTrends[0].Date)
}

func TestMovementAnalysis_FiltrosCoherentes(t *testing.T) {
	_, reports := seedReports(t)
	ctx := context.Background()

	a, err := reports.MovementAnalysis(ctx, company, analytics.MovementAnalysisQuery{Type: "out"})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Analysis.TotalMovements)
	assert.Len(t, a.Analysis.MovementSummary, 1)
	for _, tr := range a.DailyTrends {
		assert.Equal(t, entity.MovementTypeOUT, tr.Type, "las tendencias usan el mismo filtro")
	}
	for _, p := range a.TopProducts {
		assert.LessOrEqual(t, p.MovementCount, 1)
	}

	from := now.AddDate(0, 0, -50)
	wide, err := reports.MovementAnalysis(ctx, company, analytics.MovementAnalysisQuery{From: &from, ProductID: pA})
	require.NoError(t, err)
	assert.Equal(t, 3, wide.Analysis.TotalMovements)
}

func TestMovementAnalysis_FechasInvertidas(t *testing.T) {
	_, reports := seedReports(t)
	from := now
	to := now.AddDate(0, 0, -1)
	_, err := reports.MovementAnalysis(context.Background(), company, analytics.MovementAnalysisQuery{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = reports.MovementAnalysis(context.Background(), company, analytics.MovementAnalysisQuery{Type: "robo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Valorización
// ──────────────────────────────────────────────────────────────────────────────

func TestValuation(t *testing.T) {
	_, reports := seedReports(t)

	v, err := reports.Valuation(context.Background(), company, "")
	require.NoError(t, err)

	assert.Equal(t, 3, v.Summary.TotalItemsValued, "excluye on_hand 0 y productos inactivos")
	assertDec(t, "190", v.Summary.TotalCostValue)
	assertDec(t, "300", v.Summary.TotalSellingValue)
	assertDec(t, "110", v.Summary.TotalPotentialProfit)
	assertDec(t, "57.89", v.Summary.ProfitMarginPercentage)

	require.Len(t, v.TopValuedItems, 3)
	assert.Equal(t, "Norte", v.TopValuedItems[0].Warehouse)
	assertDec(t, "150", v.TopValuedItems[0].CostValue)
	assertDec(t, "75", v.TopValuedItems[0].PotentialProfit)
	assert.Equal(t, "B", v.TopValuedItems[2].SKU)
	assert.True(t, v.TopValuedItems[2].CostPrice.IsZero())
}

// Costo total 0 → margen 0, sin error.
func TestValuation_SinCostoMargenCero(t *testing.T) {
	store, reports := seedReports(t)
	ctx := context.Background()

	const other = "company-2"
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p-sin-costo", CompanyID: other, SKU: "X", Name: "Sin costo", SellingPrice: dec("5"), IsActive: true}))
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{ID: "w-otra", CompanyID: other, Name: "Otra", Code: "OTR", IsActive: true}))
	engine := inventory.NewRegisterMovementUseCase(store, store.Products(), store.Warehouses(), inventory.Options{}, zerolog.Nop())
	_, err := engine.RegisterMovement(ctx, inventory.MovementInputDTO{
		CompanyID: other, UserID: "user-2", ProductID: "p-sin-costo", WarehouseID: "w-otra",
		Type: entity.MovementTypeIN, Quantity: 4,
	})
	require.NoError(t, err)

	v, err := reports.Valuation(ctx, other, "")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Summary.TotalItemsValued)
	assert.True(t, v.Summary.TotalCostValue.IsZero())
	assertDec(t, "20", v.Summary.TotalSellingValue)
	assertDec(t, "20", v.Summary.TotalPotentialProfit)
	assert.True(t, v.Summary.ProfitMarginPercentage.IsZero())

	central, err := reports.ValuationItems(ctx, company, wCentral)
	require.NoError(t, err)
	assert.Len(t, central, 2, "Cincel inactivo no se valoriza")
}
