package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidCriteria is returned when a filter request fails validation
	ErrInvalidCriteria = errors.New("invalid criteria")

	// ErrTranslatorUnavailable is returned when the intent translator cannot
	// produce a structured draft. It is internal only: the normalizer converts
	// it into the empty-criteria fallback and it never reaches a caller.
	ErrTranslatorUnavailable = errors.New("intent translator unavailable")

	// ErrResultSetTooLarge is returned when the candidate safety cap is hit
	ErrResultSetTooLarge = errors.New("result set too large")

	// ErrCatalogStoreUnavailable is returned when the catalog store cannot be queried
	ErrCatalogStoreUnavailable = errors.New("catalog store unavailable")

	// ErrEntityNotFound is returned when an entity lookup finds no row
	ErrEntityNotFound = errors.New("entity not found")
)

// InvalidCriteriaError represents a validation failure with the offending field
type InvalidCriteriaError struct {
	Field   string
	Message string
}

func (e *InvalidCriteriaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid criteria: field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid criteria: %s", e.Message)
}

func (e *InvalidCriteriaError) Is(target error) bool {
	return target == ErrInvalidCriteria
}

// NewInvalidCriteriaError creates a new InvalidCriteriaError
func NewInvalidCriteriaError(field, message string) *InvalidCriteriaError {
	return &InvalidCriteriaError{Field: field, Message: message}
}

// ResultSetTooLargeError reports that the candidate cap was hit and the caller
// should narrow the criteria
type ResultSetTooLargeError struct {
	Cap int
}

func (e *ResultSetTooLargeError) Error() string {
	return fmt.Sprintf("result set exceeds the safety cap of %d candidates; narrow the filter criteria", e.Cap)
}

func (e *ResultSetTooLargeError) Is(target error) bool {
	return target == ErrResultSetTooLarge
}

// NewResultSetTooLargeError creates a new ResultSetTooLargeError
func NewResultSetTooLargeError(cap int) *ResultSetTooLargeError {
	return &ResultSetTooLargeError{Cap: cap}
}

// TranslatorUnavailableError wraps the cause of a failed translation attempt
type TranslatorUnavailableError struct {
	Cause error
}

func (e *TranslatorUnavailableError) Error() string {
	return fmt.Sprintf("intent translator unavailable: %v", e.Cause)
}

func (e *TranslatorUnavailableError) Is(target error) bool {
	return target == ErrTranslatorUnavailable
}

func (e *TranslatorUnavailableError) Unwrap() error {
	return e.Cause
}

// NewTranslatorUnavailableError creates a new TranslatorUnavailableError
func NewTranslatorUnavailableError(cause error) *TranslatorUnavailableError {
	return &TranslatorUnavailableError{Cause: cause}
}

// CatalogStoreError wraps a storage failure so callers can treat it as retryable
type CatalogStoreError struct {
	Operation string
	Cause     error
}

func (e *CatalogStoreError) Error() string {
	return fmt.Sprintf("catalog store unavailable during %s: %v", e.Operation, e.Cause)
}

func (e *CatalogStoreError) Is(target error) bool {
	return target == ErrCatalogStoreUnavailable
}

func (e *CatalogStoreError) Unwrap() error {
	return e.Cause
}

// NewCatalogStoreError creates a new CatalogStoreError
func NewCatalogStoreError(operation string, cause error) *CatalogStoreError {
	return &CatalogStoreError{Operation: operation, Cause: cause}
}

// EntityNotFoundError represents a failed entity lookup with context
type EntityNotFoundError struct {
	Kind string
	ID   int64
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Kind, e.ID)
}

func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}

// NewEntityNotFoundError creates a new EntityNotFoundError
func NewEntityNotFoundError(kind string, id int64) *EntityNotFoundError {
	return &EntityNotFoundError{Kind: kind, ID: id}
}
