package synth

import (
	"errors"
	"fmt"
)

// ErrSchemaViolation marks data that disagrees with its declared shape.
var ErrSchemaViolation = errors.New("schema violation")

// ErrConfigViolation marks configuration that cannot be rendered.
var ErrConfigViolation = errors.New("configuration violation")

// ErrSurface marks a call rejected by the worksheet surface.
var ErrSurface = errors.New("surface failure")

// TableError attaches the index of the offending table to an error.
type TableError struct {
	Table int
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %d: %v", e.Table, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

func schemaf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSchemaViolation, fmt.Sprintf(format, args...))
}

func configf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfigViolation, fmt.Sprintf(format, args...))
}

func surfaceErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSurface, op, err)
}
