package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU               string           `json:"sku" validate:"required,min=1,max=100"`
	Name              string           `json:"name" validate:"required,min=1,max=200"`
	Description       string           `json:"description"`
	CategoryID        string           `json:"category_id"`
	CostPrice         *decimal.Decimal `json:"cost_price"`
	SellingPrice      *decimal.Decimal `json:"selling_price"`
	MinimumStockLevel int64            `json:"minimum_stock_level"`
	ReorderPoint      int64            `json:"reorder_point"`
	ReorderQuantity   int64            `json:"reorder_quantity"`
	IsActive          *bool            `json:"is_active"` // nil = activo
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes. El SKU no se edita.
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"`
	CategoryID        *string          `json:"category_id"` // "" quita la categoría
	CostPrice         *decimal.Decimal `json:"cost_price"`
	SellingPrice      *decimal.Decimal `json:"selling_price"`
	MinimumStockLevel *int64           `json:"minimum_stock_level"`
	ReorderPoint      *int64           `json:"reorder_point"`
	ReorderQuantity   *int64           `json:"reorder_quantity"`
	IsActive          *bool            `json:"is_active"`
}

// ProductListRequest filtros y paginación de GET /api/products.
type ProductListRequest struct {
	PageRequest
	Search     string
	CategoryID string
	IsActive   *bool
	LowStock   bool
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string              `json:"id"`
	CompanyID         string              `json:"company_id"`
	CategoryID        string              `json:"category_id,omitempty"`
	SKU               string              `json:"sku"`
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	CostPrice         decimal.NullDecimal `json:"cost_price"`
	SellingPrice      decimal.NullDecimal `json:"selling_price"`
	MinimumStockLevel int64               `json:"minimum_stock_level"`
	ReorderPoint      int64               `json:"reorder_point"`
	ReorderQuantity   int64               `json:"reorder_quantity"`
	IsActive          bool                `json:"is_active"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
