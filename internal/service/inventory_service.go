package service

import (
	"context"
	"sync"
	"time"

	"stockbook/internal/model"
	"stockbook/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput carries the caller-settable fields for a new product.
type ProductInput struct {
	Name         string
	Category     string
	SupplierName string
	BuyingPrice  decimal.Decimal
	SellingPrice decimal.Decimal
	Stock        int
	ImageURI     *string
}

// ProductUpdate is a partial update: nil fields are left untouched.
type ProductUpdate struct {
	Name         *string
	Category     *string
	SupplierName *string
	BuyingPrice  *decimal.Decimal
	SellingPrice *decimal.Decimal
	Stock        *int
	ImageURI     *string
}

// InventoryService owns the catalog and the ledger. Every mutation is one
// logical step: validate, apply in memory, append the transaction, persist
// both stores. The internal lock spans read-validate-write-append so
// parallel calls can never interleave a stock check with a decrement.
type InventoryService interface {
	ListProducts(ctx context.Context) []model.Product
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	AddProduct(ctx context.Context, in ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, upd ProductUpdate) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListTransactions(ctx context.Context) []model.Transaction
	RecordSale(ctx context.Context, productID uuid.UUID, quantity int, notes *string) (*model.Transaction, error)
	RecordPurchase(ctx context.Context, productID uuid.UUID, quantity int, notes *string) (*model.Transaction, error)
	RecordRemoval(ctx context.Context, productID uuid.UUID, quantity int, reason model.RemovalReason, notes *string) (*model.Transaction, error)

	// Snapshot returns copies of both collections for aggregation. Reads
	// between a mutation and its persist still observe a consistent pair
	// because the mutation holds the lock across both.
	Snapshot(ctx context.Context) ([]model.Product, []model.Transaction)
}

type inventoryService struct {
	mu           sync.Mutex
	products     []model.Product
	transactions []model.Transaction // newest-first

	catalog repository.CatalogRepository
	ledger  repository.LedgerRepository
	now     func() time.Time
}

// NewInventoryService loads both stores and returns the engine. Constructed
// once at startup; callers share the returned handle.
func NewInventoryService(ctx context.Context, catalog repository.CatalogRepository, ledger repository.LedgerRepository) (InventoryService, error) {
	products, err := catalog.Load(ctx)
	if err != nil {
		return nil, persistErr(err)
	}
	transactions, err := ledger.Load(ctx)
	if err != nil {
		return nil, persistErr(err)
	}
	return &inventoryService{
		products:     products,
		transactions: transactions,
		catalog:      catalog,
		ledger:       ledger,
		now:          time.Now,
	}, nil
}

// ── Catalog ──────────────────────────────────────────────────────────────────

func (s *inventoryService) ListProducts(_ context.Context) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProducts(s.products)
}

func (s *inventoryService) GetProduct(_ context.Context, id uuid.UUID) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

func (s *inventoryService) AddProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := model.Product{
		ID:           uuid.New(),
		Name:         in.Name,
		Category:     in.Category,
		SupplierName: in.SupplierName,
		BuyingPrice:  in.BuyingPrice,
		SellingPrice: in.SellingPrice,
		Stock:        in.Stock,
		ImageURI:     in.ImageURI,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.products = append(s.products, p)

	if err := s.catalog.Save(ctx, s.products); err != nil {
		return nil, persistErr(err)
	}
	return &p, nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, id uuid.UUID, upd ProductUpdate) (*model.Product, error) {
	if err := validateProductUpdate(upd); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrProductNotFound
	}

	p := &s.products[i]
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.SupplierName != nil {
		p.SupplierName = *upd.SupplierName
	}
	if upd.BuyingPrice != nil {
		p.BuyingPrice = *upd.BuyingPrice
	}
	if upd.SellingPrice != nil {
		p.SellingPrice = *upd.SellingPrice
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.ImageURI != nil {
		p.ImageURI = upd.ImageURI
	}
	p.UpdatedAt = s.now()

	if err := s.catalog.Save(ctx, s.products); err != nil {
		return nil, persistErr(err)
	}
	out := *p
	return &out, nil
}

// DeleteProduct removes the product from the catalog. Transactions that
// reference it are untouched: they carry their own name/price snapshot and
// stay valid forever. Deleting an unknown id is a no-op.
func (s *inventoryService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.products = append(s.products[:i], s.products[i+1:]...)

	if err := s.catalog.Save(ctx, s.products); err != nil {
		return persistErr(err)
	}
	return nil
}

// ── Ledger ───────────────────────────────────────────────────────────────────

func (s *inventoryService) ListTransactions(_ context.Context) []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTransactions(s.transactions)
}

func (s *inventoryService) RecordSale(ctx context.Context, productID uuid.UUID, quantity int, notes *string) (*model.Transaction, error) {
	return s.record(ctx, model.TransactionSale, productID, quantity, "", notes)
}

func (s *inventoryService) RecordPurchase(ctx context.Context, productID uuid.UUID, quantity int, notes *string) (*model.Transaction, error) {
	return s.record(ctx, model.TransactionPurchase, productID, quantity, "", notes)
}

func (s *inventoryService) RecordRemoval(ctx context.Context, productID uuid.UUID, quantity int, reason model.RemovalReason, notes *string) (*model.Transaction, error) {
	if !model.ValidRemovalReason(reason) {
		return nil, validationf("reason", "must be one of damaged, expired, lost, other")
	}
	return s.record(ctx, model.TransactionRemoval, productID, quantity, reason, notes)
}

// record is the single mutation path for all three transaction types.
// Validation happens before any state change; once the stock delta is
// applied the transaction append always follows, so the ledger and the
// catalog can never drift apart in memory.
func (s *inventoryService) record(ctx context.Context, typ model.TransactionType, productID uuid.UUID, quantity int, reason model.RemovalReason, notes *string) (*model.Transaction, error) {
	if quantity <= 0 {
		return nil, validationf("quantity", "must be a positive integer, got %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil, ErrProductNotFound
	}
	p := &s.products[i]

	qty := decimal.NewFromInt(int64(quantity))
	var pricePerUnit decimal.Decimal
	var profit *decimal.Decimal

	switch typ {
	case model.TransactionSale:
		if p.Stock < quantity {
			return nil, &InsufficientStockError{ProductID: productID, Available: p.Stock, Requested: quantity}
		}
		pricePerUnit = p.SellingPrice
		pr := p.SellingPrice.Sub(p.BuyingPrice).Mul(qty)
		profit = &pr
		p.Stock -= quantity
	case model.TransactionPurchase:
		pricePerUnit = p.BuyingPrice
		p.Stock += quantity
	case model.TransactionRemoval:
		if p.Stock < quantity {
			return nil, &InsufficientStockError{ProductID: productID, Available: p.Stock, Requested: quantity}
		}
		pricePerUnit = p.BuyingPrice
		p.Stock -= quantity
	}
	p.UpdatedAt = s.now()

	tx := model.Transaction{
		ID:            uuid.New(),
		Type:          typ,
		ProductID:     productID,
		ProductName:   p.Name,
		Quantity:      quantity,
		PricePerUnit:  pricePerUnit,
		TotalAmount:   pricePerUnit.Mul(qty),
		Profit:        profit,
		RemovalReason: reason,
		Notes:         notes,
		Date:          s.now(),
	}
	// Newest-first
	s.transactions = append([]model.Transaction{tx}, s.transactions...)

	// Persist both stores. A failure here is surfaced as-is: the in-memory
	// mutation stands and storage reconverges on the next successful write.
	if err := s.catalog.Save(ctx, s.products); err != nil {
		return nil, persistErr(err)
	}
	if err := s.ledger.Save(ctx, s.transactions); err != nil {
		return nil, persistErr(err)
	}
	return &tx, nil
}

func (s *inventoryService) Snapshot(_ context.Context) ([]model.Product, []model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProducts(s.products), copyTransactions(s.transactions)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *inventoryService) indexOf(id uuid.UUID) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func copyProducts(in []model.Product) []model.Product {
	out := make([]model.Product, len(in))
	copy(out, in)
	return out
}

func copyTransactions(in []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(in))
	copy(out, in)
	return out
}

func validateProductInput(in ProductInput) error {
	if in.Name == "" {
		return validationf("name", "is required")
	}
	if in.Category == "" {
		return validationf("category", "is required")
	}
	if in.SupplierName == "" {
		return validationf("supplierName", "is required")
	}
	if in.BuyingPrice.IsNegative() {
		return validationf("buyingPrice", "must not be negative")
	}
	if in.SellingPrice.IsNegative() {
		return validationf("sellingPrice", "must not be negative")
	}
	if in.Stock < 0 {
		return validationf("stock", "must not be negative")
	}
	return nil
}

func validateProductUpdate(upd ProductUpdate) error {
	if upd.Name != nil && *upd.Name == "" {
		return validationf("name", "must not be empty")
	}
	if upd.Category != nil && *upd.Category == "" {
		return validationf("category", "must not be empty")
	}
	if upd.SupplierName != nil && *upd.SupplierName == "" {
		return validationf("supplierName", "must not be empty")
	}
	if upd.BuyingPrice != nil && upd.BuyingPrice.IsNegative() {
		return validationf("buyingPrice", "must not be negative")
	}
	if upd.SellingPrice != nil && upd.SellingPrice.IsNegative() {
		return validationf("sellingPrice", "must not be negative")
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return validationf("stock", "must not be negative")
	}
	return nil
}
