package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA   = "company-a"
	companyB   = "company-b"
	catToolsA  = "cat-tools-a"
	catToolsB  = "cat-tools-b"
	warehouseA = "warehouse-a"
)

func newProductUseCase(t *testing.T) (*usecase.ProductUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.PutCategory(ctx, entity.Category{ID: catToolsA, CompanyID: companyA, Name: "Herramientas"}))
	require.NoError(t, store.PutCategory(ctx, entity.Category{ID: catToolsB, CompanyID: companyB, Name: "Herramientas"}))
	return usecase.NewProductUseCase(store.Products(), store.Categories()), store
}

func createProduct(t *testing.T, uc *usecase.ProductUseCase, companyID string, in dto.CreateProductRequest) *dto.ProductResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), companyID, in)
	require.NoError(t, err)
	return out
}

// setOnHand deja la fila del ledger con la cantidad indicada.
func setOnHand(t *testing.T, store *memory.Store, companyID, productID string, qty int64) {
	t.Helper()
	ctx := context.Background()
	entry, err := store.Stock().GetOrCreateForUpdate(ctx, companyID, productID, warehouseA)
	require.NoError(t, err)
	entry.QuantityOnHand = qty
	require.NoError(t, store.Stock().Update(ctx, entry))
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_CategoriaDeOtraEmpresaEsNotFound(t *testing.T) {
	uc, _ := newProductUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, companyA, dto.CreateProductRequest{SKU: "A-1", Name: "Alicate", CategoryID: catToolsB})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, companyA, dto.CreateProductRequest{SKU: "A-1", Name: "Alicate", CategoryID: "no-existe"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.Create(ctx, companyA, dto.CreateProductRequest{SKU: "A-1", Name: "Alicate", CategoryID: catToolsA})
	require.NoError(t, err)
	assert.Equal(t, catToolsA, out.CategoryID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProduct_ActualizacionParcial(t *testing.T) {
	uc, _ := newProductUseCase(t)
	ctx := context.Background()
	created := createProduct(t, uc, companyA, dto.CreateProductRequest{
		SKU: "A-1", Name: "Alicate", Description: "corte", MinimumStockLevel: 5, ReorderPoint: 8,
		CostPrice: ptr(decimal.NewFromInt(10)),
	})

	out, err := uc.Update(ctx, companyA, created.ID, dto.UpdateProductRequest{
		Name:              ptr("  Alicate universal "),
		MinimumStockLevel: ptr(int64(12)),
		SellingPrice:      ptr(decimal.RequireFromString("14.50")),
		CategoryID:        ptr(catToolsA),
		IsActive:          ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Alicate universal", out.Name)
	assert.Equal(t, int64(12), out.MinimumStockLevel)
	assert.Equal(t, int64(8), out.ReorderPoint, "los campos ausentes no cambian")
	assert.Equal(t, "corte", out.Description)
	assert.Equal(t, "A-1", out.SKU)
	assert.True(t, out.CostPrice.Decimal.Equal(decimal.NewFromInt(10)))
	assert.True(t, out.SellingPrice.Decimal.Equal(decimal.RequireFromString("14.5")))
	assert.Equal(t, catToolsA, out.CategoryID)
	assert.False(t, out.IsActive)
	assert.Equal(t, created.CreatedAt, out.CreatedAt)

	stored, err := uc.GetByID(ctx, companyA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicate universal", stored.Name)

	cleared, err := uc.Update(ctx, companyA, created.ID, dto.UpdateProductRequest{CategoryID: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, cleared.CategoryID, "category_id vacío quita la categoría")
}

func TestUpdateProduct_Errores(t *testing.T) {
	uc, _ := newProductUseCase(t)
	ctx := context.Background()
	created := createProduct(t, uc, companyA, dto.CreateProductRequest{SKU: "A-1", Name: "Alicate", MinimumStockLevel: 5})

	tests := []struct {
		name      string
		companyID string
		id        string
		in        dto.UpdateProductRequest
		want      error
	}{
		{"otra empresa", companyB, created.ID, dto.UpdateProductRequest{Name: ptr("X")}, domain.ErrNotFound},
		{"no existe", companyA, "no-existe", dto.UpdateProductRequest{Name: ptr("X")}, domain.ErrNotFound},
		{"nombre vacío", companyA, created.ID, dto.UpdateProductRequest{Name: ptr("   ")}, domain.ErrInvalidInput},
		{"mínimo negativo", companyA, created.ID, dto.UpdateProductRequest{MinimumStockLevel: ptr(int64(-1))}, domain.ErrInvalidInput},
		{"punto de reorden negativo", companyA, created.ID, dto.UpdateProductRequest{ReorderPoint: ptr(int64(-3))}, domain.ErrInvalidInput},
		{"cantidad de reorden negativa", companyA, created.ID, dto.UpdateProductRequest{ReorderQuantity: ptr(int64(-3))}, domain.ErrInvalidInput},
		{"costo negativo", companyA, created.ID, dto.UpdateProductRequest{CostPrice: ptr(decimal.NewFromInt(-1))}, domain.ErrInvalidInput},
		{"precio negativo", companyA, created.ID, dto.UpdateProductRequest{SellingPrice: ptr(decimal.NewFromInt(-1))}, domain.ErrInvalidInput},
		{"categoría de otra empresa", companyA, created.ID, dto.UpdateProductRequest{CategoryID: ptr(catToolsB)}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Update(ctx, tt.companyID, tt.id, tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}

	stored, err := uc.GetByID(ctx, companyA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicate", stored.Name)
	assert.Equal(t, int64(5), stored.MinimumStockLevel)
	assert.Empty(t, stored.CategoryID)
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestListProducts_Filtros(t *testing.T) {
	uc, store := newProductUseCase(t)
	ctx := context.Background()
	alicate := createProduct(t, uc, companyA, dto.CreateProductRequest{SKU: "HER-01", Name: "Alicate", CategoryID: catToolsA, MinimumStockLevel: 10})
	broca := createProduct(t, uc, companyA, dto.CreateProductRequest{SKU: "HER-02", Name: "Broca", Description: "acero rápido", MinimumStockLevel: 5})
	createProduct(t, uc, companyA, dto.CreateProductRequest{SKU: "PIE-01", Name: "Cincel", CategoryID: catToolsA, IsActive: ptr(false)})
	createProduct(t, uc, companyB, dto.CreateProductRequest{SKU: "HER-01", Name: "Alicate B"})

	setOnHand(t, store, companyA, alicate.ID, 3) // bajo el mínimo
	setOnHand(t, store, companyA, broca.ID, 50)

	names := func(out *dto.ProductListResponse) []string {
		list := make([]string, 0, len(out.Items))
		for _, p := range out.Items {
			list = append(list, p.Name)
		}
		return list
	}

	tests := []struct {
		name      string
		req       dto.ProductListRequest
		wantNames []string
	}{
		{"sin filtros", dto.ProductListRequest{}, []string{"Alicate", "Broca", "Cincel"}},
		{"search por sku", dto.ProductListRequest{Search: "her-"}, []string{"Alicate", "Broca"}},
		{"search por nombre", dto.ProductListRequest{Search: "CINC"}, []string{"Cincel"}},
		{"search por descripción", dto.ProductListRequest{Search: "acero"}, []string{"Broca"}},
		{"categoría", dto.ProductListRequest{CategoryID: catToolsA}, []string{"Alicate", "Cincel"}},
		{"solo activos", dto.ProductListRequest{IsActive: ptr(true)}, []string{"Alicate", "Broca"}},
		{"solo inactivos", dto.ProductListRequest{IsActive: ptr(false)}, []string{"Cincel"}},
		{"stock bajo", dto.ProductListRequest{LowStock: true}, []string{"Alicate"}},
		{"combinados", dto.ProductListRequest{CategoryID: catToolsA, IsActive: ptr(true)}, []string{"Alicate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.List(ctx, companyA, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, names(out))
			assert.Equal(t, len(tt.wantNames), out.Page.Total)
		})
	}
}

func TestListProducts_TotalIgnoraPaginacion(t *testing.T) {
	uc, _ := newProductUseCase(t)
	ctx := context.Background()
	for _, sku := range []string{"A", "B", "C"} {
		createProduct(t, uc, companyA, dto.CreateProductRequest{SKU: sku, Name: "Producto " + sku})
	}

	out, err := uc.List(ctx, companyA, dto.ProductListRequest{PageRequest: dto.PageRequest{Limit: 2, Offset: 1}})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Producto B", out.Items[0].Name)
	assert.Equal(t, 3, out.Page.Total)
	assert.Equal(t, 2, out.Page.Limit)
}
