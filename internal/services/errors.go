package services

import (
	"context"
	"errors"
	"log/slog"

	"gudang/internal/apperror"
)

// fail passes classified errors through and turns anything else into an
// Internal error after logging its cause.
func fail(ctx context.Context, log *slog.Logger, op string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
		return err
	}
	log.ErrorContext(ctx, op+" failed", slog.String("error", err.Error()))
	return apperror.Internal(err)
}
