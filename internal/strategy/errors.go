package strategy

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks bad set parameters or options: alpha, overrides,
	// horizon, policy.
	ErrConfig = errors.New("configuration error")
	// ErrUsage marks caller input that contradicts the set, e.g. owning
	// more distinct cards than exist.
	ErrUsage = errors.New("usage error")
)

// FieldError identifies the offending field. Kind is ErrConfig or ErrUsage.
type FieldError struct {
	Kind  error
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Msg)
}

func (e *FieldError) Unwrap() error { return e.Kind }

func configErr(field, format string, args ...any) error {
	return &FieldError{Kind: ErrConfig, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func usageErr(field, format string, args ...any) error {
	return &FieldError{Kind: ErrUsage, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Warning reports an owned count that was clamped under ClampOwned.
type Warning struct {
	Rarity Rarity
	Owned  int
	Total  int
}

func (w Warning) String() string {
	return fmt.Sprintf("owned %s %d exceeds set total %d; clamped", w.Rarity, w.Owned, w.Total)
}
