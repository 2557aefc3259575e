package listview

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField indicates a filter or config references a field the schema does not define
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidValue indicates a filter value has the wrong type for its dimension
	ErrInvalidValue = errors.New("invalid filter value")

	// ErrInvalidConfig indicates an aggregation config is malformed
	ErrInvalidConfig = errors.New("invalid aggregation config")
)

// FieldError reports the field a filter or config error relates to.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func unknownField(name string) error {
	return &FieldError{Field: name, Err: ErrUnknownField}
}
