package completion

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is the sentinel behind every rejected (n, N) pair.
var ErrInvalidParams = errors.New("invalid completion parameters")

// ParamError names the offending field of a rejected input.
type ParamError struct {
	Field string
	Value int
	Msg   string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s=%d: %s", e.Field, e.Value, e.Msg)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParams }

// validateDeck checks deck size and draw size and returns the draw size to use.
// A draw larger than the deck is clamped down to the deck size.
func validateDeck(n, deck int) (int, error) {
	if deck < 0 {
		return 0, &ParamError{Field: "N", Value: deck, Msg: "deck size must be >= 0"}
	}
	if n < 0 {
		return 0, &ParamError{Field: "n", Value: n, Msg: "draw size must be >= 0"}
	}
	if n > deck {
		return deck, nil
	}
	return n, nil
}
