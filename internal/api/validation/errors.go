package validation

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Store-error categories after sanitization.
const (
	ErrCategoryDuplicate  = "duplicate"
	ErrCategoryReference  = "reference"
	ErrCategoryConstraint = "constraint"
	ErrCategoryPermission = "permission"
	ErrCategoryNotFound   = "not_found"
	ErrCategoryInternal   = "internal"
)

// StoreError is a store failure reduced to a safe, user-facing message.
type StoreError struct {
	Category string
	Message  string
}

func (e *StoreError) Error() string {
	return e.Message
}

// SanitizeStoreError maps a raw store-layer failure to a generic message
// that never leaks internal identifiers, SQL, or stack detail. Known
// postgres error classes keep an actionable category; everything else
// collapses to an internal error.
func SanitizeStoreError(err error) *StoreError {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &StoreError{Category: ErrCategoryNotFound, Message: "Record not found"}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &StoreError{Category: ErrCategoryDuplicate, Message: "A record with this value already exists"}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &StoreError{Category: ErrCategoryReference, Message: "Invalid reference to a related record"}
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return &StoreError{Category: ErrCategoryConstraint, Message: "Invalid data"}
	}

	// Fall back to SQLSTATE prefixes for drivers gorm does not translate.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint"):
		return &StoreError{Category: ErrCategoryDuplicate, Message: "A record with this value already exists"}
	case strings.Contains(msg, "23503") || strings.Contains(msg, "foreign key"):
		return &StoreError{Category: ErrCategoryReference, Message: "Invalid reference to a related record"}
	case strings.Contains(msg, "23514") || strings.Contains(msg, "check constraint"):
		return &StoreError{Category: ErrCategoryConstraint, Message: "Invalid data"}
	case strings.Contains(msg, "42501") || strings.Contains(msg, "permission denied"):
		return &StoreError{Category: ErrCategoryPermission, Message: "Operation not allowed"}
	}

	return &StoreError{Category: ErrCategoryInternal, Message: "An unexpected error occurred"}
}
