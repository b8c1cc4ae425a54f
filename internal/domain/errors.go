package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

// Invalid builds a validation error whose message is safe to hand back to the
// client verbatim. errors.Is(err, ErrInvalidInput) matches it.
func Invalid(msg string) error {
	return validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e validationError) Error() string { return e.msg }

func (e validationError) Is(target error) bool { return target == ErrInvalidInput }
