package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors — use with errors.Is(). Handlers map these to HTTP
// statuses; nothing below the handler layer swallows or retries them.
var (
	// ErrProductNotFound is returned when a referenced product id does not
	// exist at mutation time.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a sale or removal asks for more
	// units than are on hand. The mutation is rejected before any state change.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrExportNotFound is returned when an export job id is unknown.
	ErrExportNotFound = errors.New("export job not found")

	// ErrValidation is returned for malformed input: non-positive quantity,
	// missing required field, unrecognized removal reason.
	ErrValidation = errors.New("validation error")

	// ErrPersistence wraps a storage write failure. When it is returned from
	// a mutation the in-memory state has already been applied; memory and
	// storage stay divergent until the next successful write.
	ErrPersistence = errors.New("persistence failure")
)

// InsufficientStockError carries the shortfall details.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available, %d requested", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ValidationFieldError names the offending field.
type ValidationFieldError struct {
	Field   string
	Message string
}

func (e *ValidationFieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationFieldError) Unwrap() error { return ErrValidation }

func validationf(field, format string, args ...any) error {
	return &ValidationFieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func persistErr(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
