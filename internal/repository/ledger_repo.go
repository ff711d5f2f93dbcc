package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stockbook/internal/model"
	"stockbook/internal/storage"
)

// LedgerRepository persists the transaction log. The stored order is
// newest-first; the repository preserves whatever order it is given and the
// inventory service owns the ordering invariant.
type LedgerRepository interface {
	Load(ctx context.Context) ([]model.Transaction, error)
	Save(ctx context.Context, transactions []model.Transaction) error
}

type ledgerRepo struct{ gw storage.Gateway }

func NewLedgerRepository(gw storage.Gateway) LedgerRepository {
	return &ledgerRepo{gw: gw}
}

func (r *ledgerRepo) Load(ctx context.Context) ([]model.Transaction, error) {
	blob, err := r.gw.Get(ctx, storage.KeyTransactions)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []model.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	var transactions []model.Transaction
	if err := json.Unmarshal(blob, &transactions); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return transactions, nil
}

func (r *ledgerRepo) Save(ctx context.Context, transactions []model.Transaction) error {
	blob, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := r.gw.Set(ctx, storage.KeyTransactions, blob); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}
