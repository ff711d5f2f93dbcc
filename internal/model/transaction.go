package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionPurchase TransactionType = "purchase"
	TransactionRemoval  TransactionType = "removal"
)

type RemovalReason string

const (
	RemovalDamaged RemovalReason = "damaged"
	RemovalExpired RemovalReason = "expired"
	RemovalLost    RemovalReason = "lost"
	RemovalOther   RemovalReason = "other"
)

// ValidRemovalReason reports whether r is one of the four accepted reasons.
func ValidRemovalReason(r RemovalReason) bool {
	switch r {
	case RemovalDamaged, RemovalExpired, RemovalLost, RemovalOther:
		return true
	}
	return false
}

// Transaction is one immutable ledger entry. ProductName and PricePerUnit
// are snapshotted from the product at creation time so that later price
// edits or a product deletion never alter historical records. ProductID is
// a weak reference: it is not required to resolve after the product is gone.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	Type          TransactionType `json:"type"`
	ProductID     uuid.UUID       `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	PricePerUnit  decimal.Decimal `json:"pricePerUnit"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Profit        *decimal.Decimal `json:"profit,omitempty"`        // sales only
	RemovalReason RemovalReason    `json:"removalReason,omitempty"` // removals only
	Notes         *string          `json:"notes,omitempty"`
	Date          time.Time        `json:"date"`
}
