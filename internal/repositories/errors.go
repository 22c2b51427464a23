package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned when a stock movement would take a product below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrReferenced is returned when a delete is blocked by rows that reference the target.
	ErrReferenced = errors.New("record is referenced by other records")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps driver errors (already normalized by gorm's TranslateError) to
// repository sentinels, wrapping anything else with context.
func translate(err error, format string, args ...any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrReferenced
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return fmt.Errorf(format+": %w", append(args, err)...)
	}
}
