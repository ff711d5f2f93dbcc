package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stockbook/internal/model"
	"stockbook/internal/storage"
)

// DefaultCurrency is used until the user saves settings, matching the
// original app's first-run behavior.
const DefaultCurrency = "USD"

type SettingsRepository interface {
	Load(ctx context.Context) (model.Settings, error)
	Save(ctx context.Context, s model.Settings) error
}

type settingsRepo struct{ gw storage.Gateway }

func NewSettingsRepository(gw storage.Gateway) SettingsRepository {
	return &settingsRepo{gw: gw}
}

func (r *settingsRepo) Load(ctx context.Context) (model.Settings, error) {
	blob, err := r.gw.Get(ctx, storage.KeySettings)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return model.Settings{Currency: DefaultCurrency}, nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	var s model.Settings
	if err := json.Unmarshal(blob, &s); err != nil {
		return model.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	return s, nil
}

func (r *settingsRepo) Save(ctx context.Context, s model.Settings) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := r.gw.Set(ctx, storage.KeySettings, blob); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
