package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU          string           `json:"sku" validate:"required,min=1,max=100"`
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	Description  string           `json:"description"`
	HSNCode      string           `json:"hsn_code"`
	SellingPrice decimal.Decimal  `json:"selling_price"`
	GSTRate      *decimal.Decimal `json:"gst_rate"` // nil = sin tarifa (se factura al 18%)
	Unit         string           `json:"unit"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	HSNCode      *string          `json:"hsn_code"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	GSTRate      *decimal.Decimal `json:"gst_rate"`
	Unit         *string          `json:"unit"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string           `json:"id"`
	CompanyID    string           `json:"company_id"`
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	HSNCode      string           `json:"hsn_code"`
	SellingPrice decimal.Decimal  `json:"selling_price"`
	GSTRate      *decimal.Decimal `json:"gst_rate"`
	Unit         string           `json:"unit"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
