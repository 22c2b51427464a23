package services

import (
	"errors"

	"gudang/internal/apperror"
	"gudang/internal/config"
	"gudang/internal/repositories"
)

// reverses reports whether policy undoes a record's stock effect before it is
// changed or removed.
func reverses(policy string) bool {
	return policy != config.PolicyLegacy
}

// ledgerError classifies a StockLedger failure.
func ledgerError(err error, conflict string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return apperror.NotFound("Product not found")
	case errors.Is(err, repositories.ErrInsufficientStock):
		return apperror.Conflict("%s", conflict)
	}
	return err
}
