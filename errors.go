package powermix

import (
	"errors"
	"fmt"
)

// Errors returned by the allocation engine. They are always wrapped with
// context, use errors.Is to test for them.
var (
	ErrDataFormat       = errors.New("invalid catalog data")
	ErrUnknownSource    = errors.New("unknown source")
	ErrIndexOutOfRange  = errors.New("row index out of range")
	ErrBudgetOutOfRange = errors.New("budget out of range")
	ErrNegativePlants   = errors.New("plant count must not be negative")
)

// DataFormatError reports a malformed catalog record.
//
// Record is 1-based and zero when the error is about the table as a whole.
type DataFormatError struct {
	Record int
	Column string
	Err    error
}

func (e *DataFormatError) Error() string {
	switch {
	case e.Record > 0 && e.Column != "":
		return fmt.Sprintf("%v: record %d, column %q: %v", ErrDataFormat, e.Record, e.Column, e.Err)
	case e.Record > 0:
		return fmt.Sprintf("%v: record %d: %v", ErrDataFormat, e.Record, e.Err)
	case e.Column != "":
		return fmt.Sprintf("%v: column %q: %v", ErrDataFormat, e.Column, e.Err)
	default:
		return fmt.Sprintf("%v: %v", ErrDataFormat, e.Err)
	}
}

// Unwrap returns both ErrDataFormat and the underlying cause.
func (e *DataFormatError) Unwrap() []error { return []error{ErrDataFormat, e.Err} }

func formatErrorf(record int, column string, format string, args ...any) error {
	return &DataFormatError{Record: record, Column: column, Err: fmt.Errorf(format, args...)}
}
