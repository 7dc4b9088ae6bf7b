package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrorMatchesValidationClass(t *testing.T) {
	err := Invalid("licensePlate", "is required")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "licensePlate: is required", err.Error())

	var fieldErr *FieldError
	assert.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "licensePlate", fieldErr.Field)
}

func TestSentinelClasses(t *testing.T) {
	assert.True(t, errors.Is(ErrPINTaken, ErrConflict))
	assert.True(t, errors.Is(ErrAdminImmutable, ErrForbidden))
	assert.True(t, errors.Is(ErrPostponeLimit, ErrValidation))
	assert.True(t, errors.Is(ErrUnknownTaskType, ErrValidation))

	assert.False(t, errors.Is(ErrPINTaken, ErrValidation))
	assert.False(t, errors.Is(ErrPostponeLimit, ErrConflict))
}

func TestWrappedSentinelsSurviveFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("save user: %w", ErrPINTaken)
	assert.True(t, errors.Is(err, ErrPINTaken))
	assert.True(t, errors.Is(err, ErrConflict))
}
