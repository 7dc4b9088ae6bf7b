package shared

import (
	"errors"
	"fmt"
)

var (
	// common errors
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")

	// auth-specific errors
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidPIN   = errors.New("invalid pin")

	// user-specific errors
	ErrPINTaken       = fmt.Errorf("%w: pin already in use", ErrConflict)
	ErrAdminImmutable = fmt.Errorf("%w: branch manager cannot be deleted or demoted", ErrForbidden)

	// lifecycle-rule errors, all validation-class
	ErrPostponeLimit   = fmt.Errorf("%w: todo was already postponed once", ErrValidation)
	ErrUnknownTaskType = fmt.Errorf("%w: unknown flow task type", ErrValidation)
)

// FieldError is a validation failure attributable to a single input field.
// It matches ErrValidation under errors.Is.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a FieldError for the given field.
func Invalid(field, msg string) error {
	return &FieldError{Field: field, Msg: msg}
}
