package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecordSaleRequest and RecordPurchaseRequest share the same shape; kept
// separate so validation rules can diverge without breaking clients.
type RecordSaleRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Quantity  int     `json:"quantity"  validate:"required,min=1"`
	Notes     *string `json:"notes"     validate:"omitempty,max=500"`
}

type RecordPurchaseRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Quantity  int     `json:"quantity"  validate:"required,min=1"`
	Notes     *string `json:"notes"     validate:"omitempty,max=500"`
}

type RecordRemovalRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Quantity  int     `json:"quantity"  validate:"required,min=1"`
	Reason    string  `json:"reason"    validate:"required,oneof=damaged expired lost other"`
	Notes     *string `json:"notes"     validate:"omitempty,max=500"`
}
