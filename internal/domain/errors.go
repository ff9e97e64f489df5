package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("product category not found")
	ErrDuplicateCategory = errors.New("product category name already exists")
)

// ValidationError reports malformed input detected before any store call.
// Message is shown to the user as is.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

// CategoryInUseError is returned when a category cannot be deleted because
// products still reference it.
type CategoryInUseError struct {
	Name  string
	Count int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category %q is still used by %d product(s)", e.Name, e.Count)
}

const genericStorageMessage = "unexpected storage error"

// StorageError wraps any persistence failure that has no more specific
// meaning to the caller.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	msg := genericStorageMessage
	if e.Err != nil && e.Err.Error() != "" {
		msg = e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *StorageError) Unwrap() error { return e.Err }
