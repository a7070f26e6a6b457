package errors

import (
	"errors"
	"fmt"
)

// StorageKind is the closed set of persistence failure categories. Engine
// specific codes are mapped onto it inside the repository layer.
type StorageKind int

const (
	StorageOther StorageKind = iota
	StorageUniqueViolation
	StorageForeignKeyViolation
	StorageNotNullViolation
	StorageInvalidIdentifier
)

func (k StorageKind) String() string {
	switch k {
	case StorageUniqueViolation:
		return "unique_violation"
	case StorageForeignKeyViolation:
		return "foreign_key_violation"
	case StorageNotNullViolation:
		return "not_null_violation"
	case StorageInvalidIdentifier:
		return "invalid_identifier"
	default:
		return "other"
	}
}

type StorageError struct {
	Kind  StorageKind
	Code  string
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v", e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func NewStorageError(kind StorageKind, code, op string, cause error) *StorageError {
	return &StorageError{
		Kind:  kind,
		Code:  code,
		Op:    op,
		Cause: cause,
	}
}

func IsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
