package repository

import (
	"context"
	"testing"
	"time"

	"stockbook/internal/model"
	"stockbook/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_EmptyStoreLoadsEmptySlice(t *testing.T) {
	repo := NewCatalogRepository(storage.NewMemory())
	products, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCatalog_RoundTripPreservesOptionalFields(t *testing.T) {
	repo := NewCatalogRepository(storage.NewMemory())
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	uri := "file:///images/cola.png"
	withImage := model.Product{
		ID:           uuid.New(),
		Name:         "Cola 330ml",
		Category:     "Beverages",
		SupplierName: "Acme",
		BuyingPrice:  decimal.NewFromFloat(0.40),
		SellingPrice: decimal.NewFromFloat(0.90),
		Stock:        24,
		ImageURI:     &uri,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	withoutImage := withImage
	withoutImage.ID = uuid.New()
	withoutImage.ImageURI = nil

	require.NoError(t, repo.Save(ctx, []model.Product{withImage, withoutImage}))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	require.NotNil(t, loaded[0].ImageURI)
	assert.Equal(t, uri, *loaded[0].ImageURI)
	assert.Nil(t, loaded[1].ImageURI)
	assert.Equal(t, "0.4", loaded[0].BuyingPrice.String())
	assert.True(t, loaded[0].CreatedAt.Equal(now))
}

func TestLedger_RoundTripPreservesProfitAndReason(t *testing.T) {
	repo := NewLedgerRepository(storage.NewMemory())
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	profit := decimal.NewFromFloat(15)
	sale := model.Transaction{
		ID:           uuid.New(),
		Type:         model.TransactionSale,
		ProductID:    uuid.New(),
		ProductName:  "Widget",
		Quantity:     3,
		PricePerUnit: decimal.NewFromFloat(15),
		TotalAmount:  decimal.NewFromFloat(45),
		Profit:       &profit,
		Date:         now,
	}
	removal := model.Transaction{
		ID:            uuid.New(),
		Type:          model.TransactionRemoval,
		ProductID:     sale.ProductID,
		ProductName:   "Widget",
		Quantity:      1,
		PricePerUnit:  decimal.NewFromFloat(10),
		TotalAmount:   decimal.NewFromFloat(10),
		RemovalReason: model.RemovalExpired,
		Date:          now,
	}

	require.NoError(t, repo.Save(ctx, []model.Transaction{sale, removal}))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	require.NotNil(t, loaded[0].Profit)
	assert.Equal(t, "15", loaded[0].Profit.String())
	assert.Empty(t, loaded[0].RemovalReason)

	assert.Nil(t, loaded[1].Profit)
	assert.Equal(t, model.RemovalExpired, loaded[1].RemovalReason)
}

func TestSettings_LoadDefaultsWhenAbsent(t *testing.T) {
	repo := NewSettingsRepository(storage.NewMemory())
	s, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultCurrency, s.Currency)
}

func TestSettings_EmptyCurrencyFallsBackToDefault(t *testing.T) {
	gw := storage.NewMemory()
	repo := NewSettingsRepository(gw)
	ctx := context.Background()

	require.NoError(t, gw.Set(ctx, storage.KeySettings, []byte(`{"companyName":"Corner Shop"}`)))
	s, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", s.CompanyName)
	assert.Equal(t, DefaultCurrency, s.Currency)
}

func TestAuth_LoadWithoutSeed(t *testing.T) {
	repo := NewAuthRepository(storage.NewMemory())
	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestAuth_RoundTrip(t *testing.T) {
	repo := NewAuthRepository(storage.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, model.Credential{Username: "admin", PasswordHash: "$2a$12$x"}))
	c, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", c.Username)
	assert.Equal(t, "$2a$12$x", c.PasswordHash)
}
