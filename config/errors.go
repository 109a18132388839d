package config

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/expconf/searchspace"
)

var (
	ErrUnknownField      = errors.New("unknown field")
	ErrTypeCoercion      = errors.New("type coercion failed")
	ErrFrozen            = errors.New("config is frozen")
	ErrMissingRequired   = errors.New("missing required value")
	ErrInvalidDefinition = errors.New("invalid config definition")

	// ErrInvalidSearchPath is returned when a search dimension does not
	// resolve to a field of the configuration type.
	ErrInvalidSearchPath = searchspace.ErrInvalidSearchPath
)

// FieldError ties an error to a field of a configuration type. Field may be a
// dotted path when the failure happened inside a nested configuration.
type FieldError struct {
	Type  string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field '%s': %v", e.Type, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func coercionError(v any, t Type, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: cannot convert %T to %s", ErrTypeCoercion, v, t.Name())
	}
	return fmt.Errorf("%w: cannot convert %T to %s: %v", ErrTypeCoercion, v, t.Name(), cause)
}
