package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Typed errors below match one of these through errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("schedule conflict")
	ErrPersistence  = errors.New("persistence failure")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError is returned before any store mutation when a request is malformed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictKind says which calendar an activity collided on.
type ConflictKind string

const (
	ConflictRoom      ConflictKind = "room"
	ConflictPresenter ConflictKind = "presenter"
)

// ConflictError carries the ids of the activities a write would overlap.
type ConflictError struct {
	Kind        ConflictKind
	ActivityIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict with activities [%s]", e.Kind, strings.Join(e.ActivityIDs, ", "))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// PersistenceError wraps a store failure. The operation was not applied.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

// DeliveryError is a single recipient's failed send. It is logged, never returned to the
// caller of a write operation.
type DeliveryError struct {
	RecipientID string
	Category    Category
	Err         error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver %s to %s: %v", e.Category, e.RecipientID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// WrapStoreError converts a repository error into the error the core reports.
// ErrNotFound passes through so callers can decide which entity was missing.
func WrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrConflict) || errors.Is(err, ErrPersistence) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
