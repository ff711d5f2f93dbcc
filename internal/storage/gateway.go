// Package storage is the persistence gateway: an opaque key-value store
// holding serialized record blobs. There is no schema beyond key → blob,
// no transactions, and no versioning; failures are reported to the caller
// and never retried here.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for a key that has never been written
// (or has been removed).
var ErrKeyNotFound = errors.New("key not found")

// Gateway is the contract the rest of the app persists through.
// Values are opaque blobs; callers own serialization.
type Gateway interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Persisted record keys. Each key holds one logical store as a single blob.
const (
	KeyProducts     = "products"
	KeyTransactions = "transactions"
	KeySettings     = "settings"
	KeyAuth         = "auth"
)
