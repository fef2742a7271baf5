package models

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrEmptyMessage   = errors.New("message cannot be empty")
	ErrTitleTooLong   = errors.New("title is too long")
	ErrMessageTooLong = errors.New("message is too long")
)

// LengthError is returned when a field exceeds its configured maximum.
// It unwraps to ErrTitleTooLong or ErrMessageTooLong.
type LengthError struct {
	Err    error
	Max    int
	Actual int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%v (maximum %d characters, got %d)", e.Err, e.Max, e.Actual)
}

func (e *LengthError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err was produced by post validation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrEmptyMessage) ||
		errors.Is(err, ErrTitleTooLong) ||
		errors.Is(err, ErrMessageTooLong)
}
