package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string          `json:"name"          validate:"required,min=1,max=120"`
	Category     string          `json:"category"      validate:"required,min=1,max=60"`
	SupplierName string          `json:"supplierName"  validate:"required,min=1,max=120"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"   validate:"min=0"`
	SellingPrice decimal.Decimal `json:"sellingPrice"  validate:"min=0"`
	Stock        int             `json:"stock"         validate:"min=0"`
	ImageURI     *string         `json:"imageUri"`
}

type UpdateProductRequest struct {
	Name         *string          `json:"name"          validate:"omitempty,min=1,max=120"`
	Category     *string          `json:"category"      validate:"omitempty,min=1,max=60"`
	SupplierName *string          `json:"supplierName"  validate:"omitempty,min=1,max=120"`
	BuyingPrice  *decimal.Decimal `json:"buyingPrice"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	Stock        *int             `json:"stock"         validate:"omitempty,min=0"`
	ImageURI     *string          `json:"imageUri"`
}
