// Package repository maps each persisted key to typed load/save operations.
// Every store is one JSON blob under one key — the whole list is rewritten
// on save, matching how the app's data was always laid out on device.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stockbook/internal/model"
	"stockbook/internal/storage"
)

// CatalogRepository persists the product catalog.
// Services depend on this interface, not on the concrete gateway-backed
// implementation, enabling clean unit testing via stubs.
type CatalogRepository interface {
	Load(ctx context.Context) ([]model.Product, error)
	Save(ctx context.Context, products []model.Product) error
}

type catalogRepo struct{ gw storage.Gateway }

func NewCatalogRepository(gw storage.Gateway) CatalogRepository {
	return &catalogRepo{gw: gw}
}

func (r *catalogRepo) Load(ctx context.Context) ([]model.Product, error) {
	blob, err := r.gw.Get(ctx, storage.KeyProducts)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []model.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	var products []model.Product
	if err := json.Unmarshal(blob, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (r *catalogRepo) Save(ctx context.Context, products []model.Product) error {
	blob, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	if err := r.gw.Set(ctx, storage.KeyProducts, blob); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	return nil
}
