package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"gudang/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperror.Kind
	}{
		{"not found", apperror.NotFound("Product not found"), apperror.KindNotFound},
		{"validation", apperror.Validation("bad %s", "name"), apperror.KindValidation},
		{"conflict", apperror.Conflict("duplicate"), apperror.KindConflict},
		{"no change", apperror.NoChange(), apperror.KindNoChange},
		{"wrapped conflict", fmt.Errorf("outer: %w", apperror.Conflict("x")), apperror.KindConflict},
		{"plain error", errors.New("boom"), apperror.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperror.KindOf(tt.err))
		})
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperror.Internal(cause)

	assert.Equal(t, apperror.InternalMessage, apperror.MessageOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, apperror.InternalMessage, apperror.MessageOf(errors.New("raw")))
}

func TestIs(t *testing.T) {
	assert.True(t, apperror.Is(apperror.NoChange(), apperror.KindNoChange))
	assert.False(t, apperror.Is(nil, apperror.KindInternal))
	assert.False(t, apperror.Is(apperror.NotFound("x"), apperror.KindConflict))
}
