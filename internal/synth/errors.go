package synth

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrInvalidCount = errors.New("invalid count")
	ErrOutOfRange   = errors.New("value out of range")
)

func unknown(kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, ErrUnknownKey)
}
