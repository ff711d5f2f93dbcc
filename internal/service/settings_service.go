package service

import (
	"context"

	"stockbook/internal/currency"
	"stockbook/internal/model"
	"stockbook/internal/repository"
)

// ResolvedSettings is the stored settings plus the derived currency symbol.
type ResolvedSettings struct {
	model.Settings
	CurrencySymbol string `json:"currencySymbol"`
}

type SettingsService interface {
	Get(ctx context.Context) (ResolvedSettings, error)
	Update(ctx context.Context, s model.Settings) (ResolvedSettings, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (ResolvedSettings, error) {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		return ResolvedSettings{}, persistErr(err)
	}
	return resolve(stored), nil
}

func (s *settingsService) Update(ctx context.Context, in model.Settings) (ResolvedSettings, error) {
	if in.Currency == "" {
		return ResolvedSettings{}, validationf("currency", "is required")
	}
	if err := s.repo.Save(ctx, in); err != nil {
		return ResolvedSettings{}, persistErr(err)
	}
	return resolve(in), nil
}

func resolve(s model.Settings) ResolvedSettings {
	return ResolvedSettings{Settings: s, CurrencySymbol: currency.Symbol(s.Currency)}
}
