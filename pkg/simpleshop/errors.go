package simpleshop

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrNotFound indicates a record was not found
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists indicates a record with the same id already exists
	ErrAlreadyExists = errors.New("record already exists")

	// ErrInvalidInput indicates a request failed validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidFilter indicates a filter referenced an unknown field or had a bad value
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrDuplicateName indicates a saved filter name is already used in the view
	ErrDuplicateName = errors.New("duplicate name")

	// ErrUnknownView indicates a view name is not recognized
	ErrUnknownView = errors.New("unknown view")

	// ErrUnsupportedFormat indicates an export format is not supported
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrNoReportStore indicates exports were requested without a report store
	ErrNoReportStore = errors.New("report store not configured")
)

// RecordError represents an error related to an operation on one record
type RecordError struct {
	Kind string
	ID   uuid.UUID
	Op   string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s operation %s failed for %s: %v", e.Kind, e.Op, e.ID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// ValidationError reports the request field that failed validation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func required(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
