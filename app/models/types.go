package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const (
	// DefaultMaxTitleLen matches the width of the rendered title row.
	DefaultMaxTitleLen = 50
	DefaultMaxPostLen  = 500
)

// Limits bounds the length of a post's title and message, counted in characters.
// A title never needs more than the TextWidth columns of its row.
type Limits struct {
	MaxTitleLen int `validate:"gt=0,lte=50"`
	MaxPostLen  int `validate:"gt=0"`
}

// Validate checks that the limits are usable for rendering.
func (l Limits) Validate() error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("invalid limits: %w", err)
	}
	return nil
}

// DefaultLimits returns the limits used by New.
func DefaultLimits() Limits {
	return Limits{
		MaxTitleLen: DefaultMaxTitleLen,
		MaxPostLen:  DefaultMaxPostLen,
	}
}

// Clock supplies the creation time of new posts.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
