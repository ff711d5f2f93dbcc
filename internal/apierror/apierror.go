// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, storage errors, etc.).
package apierror

// Stable machine-readable error kinds. The UI branches on these instead of
// parsing the human-readable detail.
const (
	CodeNotFound          = "not_found"
	CodeInsufficientStock = "insufficient_stock"
	CodeValidation        = "validation_error"
	CodePersistence       = "persistence_failure"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func WithCode(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: CodeValidation, Detail: "Validation failed", Fields: fields}
}
