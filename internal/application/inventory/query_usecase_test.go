package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

func TestListMovements_FiltraYOrdena(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	ctx := context.Background()
	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	in := movement(entity.MovementTypeIN, 30)
	in.MovementDate = &day1
	f.apply(t, in)
	out := movement(entity.MovementTypeOUT, 5)
	out.MovementDate = &day2
	f.apply(t, out)

	q := inventory.NewQueryUseCase(f.store.Stock(), f.store.Movements())

	all, err := q.ListMovements(ctx, companyA, inventory.MovementQuery{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, entity.MovementTypeOUT, all.Items[0].Type, "más reciente primero")
	assert.Equal(t, 2, all.Page.Total)
	assert.Equal(t, 20, all.Page.Limit)

	onlyIn, err := q.ListMovements(ctx, companyA, inventory.MovementQuery{Type: "IN"})
	require.NoError(t, err)
	require.Len(t, onlyIn.Items, 1)
	assert.Equal(t, int64(30), onlyIn.Items[0].Quantity)

	from := day2.Add(-time.Hour)
	recent, err := q.ListMovements(ctx, companyA, inventory.MovementQuery{From: &from})
	require.NoError(t, err)
	assert.Len(t, recent.Items, 1)

	paged, err := q.ListMovements(ctx, companyA, inventory.MovementQuery{Page: dto.PageRequest{Limit: 1, Offset: 1}})
	require.NoError(t, err)
	require.Len(t, paged.Items, 1)
	assert.Equal(t, entity.MovementTypeIN, paged.Items[0].Type)
	assert.Equal(t, 2, paged.Page.Total)
}

func TestListMovements_FiltrosInvalidos(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	q := inventory.NewQueryUseCase(f.store.Stock(), f.store.Movements())
	ctx := context.Background()

	_, err := q.ListMovements(ctx, companyA, inventory.MovementQuery{Type: "robo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	from := fixedNow
	to := fixedNow.Add(-time.Hour)
	_, err = q.ListMovements(ctx, companyA, inventory.MovementQuery{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListStock_SoloStockBajo(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	ctx := context.Background()
	seedCatalog(t, f.store, companyA, "product-8", "warehouse-4", 5)
	f.apply(t, movement(entity.MovementTypeIN, 100)) // min 50, no bajo
	other := movement(entity.MovementTypeIN, 2)
	other.ProductID = "product-8"
	other.WarehouseID = "warehouse-4"
	f.apply(t, other) // min 5, bajo

	q := inventory.NewQueryUseCase(f.store.Stock(), f.store.Movements())
	all, err := q.ListStock(ctx, companyA, inventory.StockQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	low, err := q.ListStock(ctx, companyA, inventory.StockQuery{LowStockOnly: true})
	require.NoError(t, err)
	require.Len(t, low.Items, 1)
	assert.Equal(t, "product-8", low.Items[0].ProductID)
	assert.Equal(t, int64(2), low.Items[0].QuantityAvailable)
}

func TestAlertUseCase_ListarYMarcarLeida(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	ctx := context.Background()
	first := f.apply(t, movement(entity.MovementTypeIN, 10))
	second := f.apply(t, movement(entity.MovementTypeOUT, 1))
	require.NotNil(t, first.Alert)
	require.NotNil(t, second.Alert)

	uc := inventory.NewAlertUseCase(f.store.Alerts())
	list, err := uc.List(ctx, companyA, false, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, second.Alert.ID, list.Items[0].ID, "más reciente primero")

	read, err := uc.MarkRead(ctx, companyA, first.Alert.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	unread, err := uc.List(ctx, companyA, true, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, unread.Items, 1)
	assert.Equal(t, second.Alert.ID, unread.Items[0].ID)

	_, err = uc.MarkRead(ctx, companyB, second.Alert.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "otra empresa no puede marcar la alerta")
}

func TestReplenishment_SugiereBajoPuntoDeReorden(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	ctx := context.Background()
	require.NoError(t, f.store.Products().Create(ctx, &entity.Product{
		ID: "p-reorder", CompanyID: companyA, SKU: "R-1", Name: "Tuerca", IsActive: true,
		ReorderPoint: 20, ReorderQuantity: 50,
		CostPrice: decimal.NewNullDecimal(decimal.RequireFromString("2.5")),
	}))
	require.NoError(t, f.store.Products().Create(ctx, &entity.Product{
		ID: "p-default", CompanyID: companyA, SKU: "R-2", Name: "Arandela", IsActive: true,
		ReorderPoint: 10,
	}))
	for _, m := range []struct {
		id  string
		qty int64
	}{{"p-reorder", 5}, {"p-default", 8}, {productID, 100}} {
		in := movement(entity.MovementTypeIN, m.qty)
		in.ProductID = m.id
		f.apply(t, in)
	}

	list, err := inventory.NewReplenishmentUseCase(f.store.Reports()).GenerateReplenishmentList(ctx, companyA, "")
	require.NoError(t, err)
	require.Len(t, list, 2, "product-7 no tiene punto de reorden")

	assert.Equal(t, "R-1", list[0].SKU, "mayor déficit primero")
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, int64(50), list[0].SuggestedOrderQty)
	assert.True(t, decimal.RequireFromString("125").Equal(list[0].EstimatedOrderCost))

	assert.Equal(t, "R-2", list[1].SKU)
	assert.Equal(t, int64(7), list[1].SuggestedOrderQty, "sin reorder_quantity: 1.5x punto de reorden - actual")
	assert.True(t, list[1].EstimatedOrderCost.IsZero())
}
