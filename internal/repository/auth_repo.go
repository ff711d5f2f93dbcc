package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stockbook/internal/model"
	"stockbook/internal/storage"
)

// ErrNoCredential is returned when no credential has been seeded yet.
var ErrNoCredential = errors.New("no credential stored")

type AuthRepository interface {
	Load(ctx context.Context) (model.Credential, error)
	Save(ctx context.Context, c model.Credential) error
}

type authRepo struct{ gw storage.Gateway }

func NewAuthRepository(gw storage.Gateway) AuthRepository {
	return &authRepo{gw: gw}
}

func (r *authRepo) Load(ctx context.Context) (model.Credential, error) {
	blob, err := r.gw.Get(ctx, storage.KeyAuth)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return model.Credential{}, ErrNoCredential
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("load credential: %w", err)
	}
	var c model.Credential
	if err := json.Unmarshal(blob, &c); err != nil {
		return model.Credential{}, fmt.Errorf("decode credential: %w", err)
	}
	return c, nil
}

func (r *authRepo) Save(ctx context.Context, c model.Credential) error {
	blob, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	if err := r.gw.Set(ctx, storage.KeyAuth, blob); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}
