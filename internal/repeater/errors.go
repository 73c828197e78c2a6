// =============================================================================
// Repeater List Creator - Error Kinds
// =============================================================================
//
// Every failure the transformation pipeline can surface falls into one of
// three kinds:
//
//   ConfigurationError : an expected column is missing or ambiguous
//   FormatError        : a user-supplied name or path is not acceptable
//   ParseError         : a value that must be numeric is not
//
// Callers add context with github.com/pkg/errors and recover the kind with
// errors.As.
//
// =============================================================================

package repeater

import (
	"fmt"
)

// ConfigurationError reports a problem with the shape of an input table,
// typically a required column that is absent.
type ConfigurationError struct {
	// File is the input file the table came from, if known.
	File string

	// Column is the column that could not be resolved.
	Column string

	// Reason describes what was wrong with the column.
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: column %q: %s", e.File, e.Column, e.Reason)
	}
	return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
}

// FormatError reports an unacceptable filename, extension or directory.
type FormatError struct {
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%q: %s", e.Value, e.Reason)
}

// ParseError reports a value that could not be parsed as a number.
// Row is the 1-based data row (header excluded); zero means the value did
// not come from a table row.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: cannot parse %q: %v", e.Column, e.Value, e.Err)
}

// Unwrap returns the underlying strconv error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
