package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// ProductUseCase casos de uso del directorio de productos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// Create crea un producto. El SKU es único por empresa (ErrConflict si se repite).
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: sku y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.MinimumStockLevel < 0 || in.ReorderPoint < 0 || in.ReorderQuantity < 0 {
		return nil, fmt.Errorf("%w: niveles de stock no pueden ser negativos", domain.ErrInvalidInput)
	}
	if isNegative(in.CostPrice) || isNegative(in.SellingPrice) {
		return nil, fmt.Errorf("%w: precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	if err := uc.checkCategory(ctx, companyID, in.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		CategoryID:        in.CategoryID,
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		MinimumStockLevel: in.MinimumStockLevel,
		ReorderPoint:      in.ReorderPoint,
		ReorderQuantity:   in.ReorderQuantity,
		IsActive:          in.IsActive == nil || *in.IsActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.CostPrice != nil {
		product.CostPrice = decimal.NewNullDecimal(*in.CostPrice)
	}
	if in.SellingPrice != nil {
		product.SellingPrice = decimal.NewNullDecimal(*in.SellingPrice)
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa (ErrNotFound si no existe).
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial a un producto de la empresa (ErrNotFound si no existe).
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		in.Name = &name
	}
	if isNegativeLevel(in.MinimumStockLevel) || isNegativeLevel(in.ReorderPoint) || isNegativeLevel(in.ReorderQuantity) {
		return nil, fmt.Errorf("%w: niveles de stock no pueden ser negativos", domain.ErrInvalidInput)
	}
	if isNegative(in.CostPrice) || isNegative(in.SellingPrice) {
		return nil, fmt.Errorf("%w: precios no pueden ser negativos", domain.ErrInvalidInput)
	}

	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if in.CategoryID != nil {
		categoryID := strings.TrimSpace(*in.CategoryID)
		if err := uc.checkCategory(ctx, companyID, categoryID); err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CostPrice != nil {
		product.CostPrice = decimal.NewNullDecimal(*in.CostPrice)
	}
	if in.SellingPrice != nil {
		product.SellingPrice = decimal.NewNullDecimal(*in.SellingPrice)
	}
	if in.MinimumStockLevel != nil {
		product.MinimumStockLevel = *in.MinimumStockLevel
	}
	if in.ReorderPoint != nil {
		product.ReorderPoint = *in.ReorderPoint
	}
	if in.ReorderQuantity != nil {
		product.ReorderQuantity = *in.ReorderQuantity
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por empresa con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, req dto.ProductListRequest) (*dto.ProductListResponse, error) {
	req.DefaultPage()
	list, total, err := uc.repo.ListByCompany(ctx, companyID, repository.ProductFilter{
		Search:       req.Search,
		CategoryID:   strings.TrimSpace(req.CategoryID),
		IsActive:     req.IsActive,
		LowStockOnly: req.LowStock,
		Limit:        req.Limit,
		Offset:       req.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: req.Limit, Offset: req.Offset, Total: total},
	}, nil
}

// checkCategory exige que una categoría no vacía exista en la empresa.
func (uc *ProductUseCase) checkCategory(ctx context.Context, companyID, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	category, err := uc.categories.GetByID(ctx, companyID, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, categoryID)
	}
	return nil
}

func isNegativeLevel(v *int64) bool {
	return v != nil && *v < 0
}

func isNegative(d *decimal.Decimal) bool {
	return d != nil && d.IsNegative()
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		CompanyID:         p.CompanyID,
		CategoryID:        p.CategoryID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		CostPrice:         p.CostPrice,
		SellingPrice:      p.SellingPrice,
		MinimumStockLevel: p.MinimumStockLevel,
		ReorderPoint:      p.ReorderPoint,
		ReorderQuantity:   p.ReorderQuantity,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
