// errors.go
package sqlexec

import (
	"errors"
	"fmt"
)

// ErrMixedParameters is returned when a statement mixes positional and named
// arguments. A statement uses exactly one style; the first Arg* call decides
// which. The error is recorded at the offending call and surfaced by Insert
// or InsertExact before any driver interaction.
var ErrMixedParameters = errors.New("sqlexec: use either positional or named parameters, not both")

// MissingParameterError is returned when the SQL text references a named
// parameter that no Arg*Name call supplied. Every name appearing in the text
// must be given a value, even if that value is a typed null.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("sqlexec: no value provided for parameter :%s", e.Name)
}

// WrongNumberOfRowsError is returned by InsertExact when the affected-row
// count reported by the driver differs from the caller's expectation. It is a
// distinct condition from a generic execution failure; match it with
// [errors.As] to branch on the counts.
//
// Code is safe to show to an untrusted caller; SQL and Args are not.
type WrongNumberOfRowsError struct {
	Expected int64
	Actual   int64
	Code     string
	SQL      string
	Args     []any

	// set when the statement was built with WithLogParameters(false);
	// keeps argument values out of the error text while Args stays
	// available to trusted callers.
	redactArgs bool
}

func (e *WrongNumberOfRowsError) Error() string {
	return fmt.Sprintf("sqlexec: the number of affected rows was %d, but %d were expected (error code %s)\n%s",
		e.Actual, e.Expected, e.Code, diagnosticSQL(e.SQL, e.Args, e.redactArgs))
}

// StatementError wraps any failure during statement preparation, argument
// binding, or execution. It carries the resolved SQL text, the resolved
// positional argument values, and an opaque correlation code that also
// appears in the diagnostic log record for the failed execution.
//
// Code is safe to show to an untrusted caller; SQL and Args are not. The
// underlying driver error is available through [errors.Unwrap].
type StatementError struct {
	Code string
	SQL  string
	Args []any
	Err  error

	// see WrongNumberOfRowsError.redactArgs.
	redactArgs bool
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("sqlexec: statement failed (error code %s): %v\n%s",
		e.Code, e.Err, diagnosticSQL(e.SQL, e.Args, e.redactArgs))
}

func (e *StatementError) Unwrap() error { return e.Err }
