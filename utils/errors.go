package utils

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-readable category of a failed operation.
type ErrorKind string

const (
	KindValidationFailed      ErrorKind = "ValidationFailed"
	KindConflict              ErrorKind = "Conflict"
	KindNotFound              ErrorKind = "NotFound"
	KindUnauthorized          ErrorKind = "Unauthorized"
	KindIDGenerationExhausted ErrorKind = "IdGenerationExhausted"
	KindStoreUnavailable      ErrorKind = "StoreUnavailable"
)

// FieldError describes one violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError carries a kind, a human readable message and, for validation
// failures, the offending fields.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewValidationError(fields ...FieldError) *AppError {
	return &AppError{Kind: KindValidationFailed, Message: "Validation failed", Fields: fields}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewStoreUnavailableError(message string, cause error) *AppError {
	return &AppError{Kind: KindStoreUnavailable, Message: message, Cause: cause}
}

// ErrIDGenerationExhausted is returned when a bounded random identifier draw
// never found a free value. Retrying the whole operation is safe.
var ErrIDGenerationExhausted = &AppError{
	Kind:    KindIDGenerationExhausted,
	Message: "Unable to generate a unique identifier, please retry",
}

// KindOf returns the kind of err, or StoreUnavailable for errors that did not
// originate from this package.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreUnavailable
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
