package store

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrTimeout     = errors.New("store query timed out")
	ErrStoreClosed = errors.New("store is closed")
)

// StoreError provides structured error information for store operations.
type StoreError struct {
	Op      string // Operation that failed (e.g., "CreatePerson")
	Entity  string // Entity type ("person", "relationship", "interaction")
	ID      string // Entity ID (if applicable)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *StoreError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// PersonNotFoundError creates a not found error for a person lookup.
func PersonNotFoundError(op, id string) error {
	return &StoreError{Op: op, Entity: "person", ID: id, Cause: ErrNotFound}
}

// ConflictError creates a uniqueness-violation error with context.
func ConflictError(op, entity, context string) error {
	return &StoreError{Op: op, Entity: entity, Context: context, Cause: ErrConflict}
}

// TimeoutError wraps a query expiry for the given operation.
func TimeoutError(op, entity string, cause error) error {
	return &StoreError{Op: op, Entity: entity, Context: cause.Error(), Cause: ErrTimeout}
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict returns true if the error is a uniqueness violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsTimeout returns true if the error is a query timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
