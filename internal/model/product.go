package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. The stock field is the single source of truth
// for quantity on hand and is only mutated through the inventory service,
// which guarantees it never goes negative.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Stock        int             `json:"stock"`
	SupplierName string          `json:"supplierName"`
	ImageURI     *string         `json:"imageUri,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
