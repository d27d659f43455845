package pantry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat means an import parsed as JSON but was not an array.
	ErrInvalidFormat = errors.New("invalid data format: expected a JSON array of items")
	// ErrUnreadable means an import could not be parsed at all.
	ErrUnreadable = errors.New("error reading file: not valid JSON")
)

// ValidationError reports a rejected item field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
