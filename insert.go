// insert.go
package sqlexec

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InsertStmt configures and executes one INSERT-style statement: SQL that is
// executed for its affected-row count rather than a result set.
//
// Build it with [Insert], add arguments with the chained Arg* methods, then
// run it once with [InsertStmt.Insert] or [InsertStmt.InsertExact]. Argument
// methods come in pairs: the plain form appends a positional argument bound
// to the next ? in order, the *Name form supplies a value for a :name token
// in the SQL. A statement uses exactly one of the two styles.
//
// Nil inputs become typed nulls: the driver binds a SQL NULL of the declared
// kind, not a missing parameter.
//
// An InsertStmt is single-use and not safe for concurrent use; construct,
// add arguments, execute, and discard it.
//
// Example:
//
//	n := int32(5)
//	label := "hi"
//	err := sqlexec.Insert(db, `insert into t (x, y) values (:x, :y)`).
//	    ArgInt32Name("x", &n).
//	    ArgStringName("y", &label).
//	    InsertExact(ctx, 1)
type InsertStmt struct {
	p          Preparer
	sql        string
	opts       options
	positional []Arg
	named      map[string]Arg
	err        error
}

// Insert starts a statement against p (a *sql.DB, *sql.Tx, or *sql.Conn)
// using the given SQL template. The template may contain either ?
// placeholders bound by the positional Arg* methods, or :name tokens bound
// by the Arg*Name methods, but not both.
func Insert(p Preparer, query string, opts ...Option) *InsertStmt {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &InsertStmt{p: p, sql: query, opts: o}
}

// ArgInt32 appends a positional integer argument; nil binds a NULL integer.
func (s *InsertStmt) ArgInt32(arg *int32) *InsertStmt {
	return s.positionalArg(nullInt32(arg))
}

// ArgInt32Name supplies an integer value for the named parameter; nil binds
// a NULL integer.
func (s *InsertStmt) ArgInt32Name(name string, arg *int32) *InsertStmt {
	return s.namedArg(name, nullInt32(arg))
}

// ArgInt64 appends a positional long argument; nil binds a NULL.
func (s *InsertStmt) ArgInt64(arg *int64) *InsertStmt {
	return s.positionalArg(nullInt64(arg))
}

// ArgInt64Name supplies a long value for the named parameter; nil binds a NULL.
func (s *InsertStmt) ArgInt64Name(name string, arg *int64) *InsertStmt {
	return s.namedArg(name, nullInt64(arg))
}

// ArgFloat32 appends a positional float argument; nil binds a NULL.
func (s *InsertStmt) ArgFloat32(arg *float32) *InsertStmt {
	return s.positionalArg(nullFloat32(arg))
}

// ArgFloat32Name supplies a float value for the named parameter; nil binds a NULL.
func (s *InsertStmt) ArgFloat32Name(name string, arg *float32) *InsertStmt {
	return s.namedArg(name, nullFloat32(arg))
}

// ArgFloat64 appends a positional double argument; nil binds a NULL.
func (s *InsertStmt) ArgFloat64(arg *float64) *InsertStmt {
	return s.positionalArg(nullFloat64(arg))
}

// ArgFloat64Name supplies a double value for the named parameter; nil binds a NULL.
func (s *InsertStmt) ArgFloat64Name(name string, arg *float64) *InsertStmt {
	return s.namedArg(name, nullFloat64(arg))
}

// ArgDecimal appends a positional exact-decimal argument; nil binds a NULL.
func (s *InsertStmt) ArgDecimal(arg *decimal.Decimal) *InsertStmt {
	return s.positionalArg(nullDecimal(arg))
}

// ArgDecimalName supplies an exact-decimal value for the named parameter;
// nil binds a NULL.
func (s *InsertStmt) ArgDecimalName(name string, arg *decimal.Decimal) *InsertStmt {
	return s.namedArg(name, nullDecimal(arg))
}

// ArgString appends a positional text argument; nil binds a NULL.
func (s *InsertStmt) ArgString(arg *string) *InsertStmt {
	return s.positionalArg(nullString(arg))
}

// ArgStringName supplies a text value for the named parameter; nil binds a NULL.
func (s *InsertStmt) ArgStringName(name string, arg *string) *InsertStmt {
	return s.namedArg(name, nullString(arg))
}

// ArgTime appends a positional date/time argument; nil binds a NULL.
func (s *InsertStmt) ArgTime(arg *time.Time) *InsertStmt {
	return s.positionalArg(nullTime(arg))
}

// ArgTimeName supplies a date/time value for the named parameter; nil binds a NULL.
func (s *InsertStmt) ArgTimeName(name string, arg *time.Time) *InsertStmt {
	return s.namedArg(name, nullTime(arg))
}

// ArgBytes appends a positional binary argument; a nil slice binds a NULL.
func (s *InsertStmt) ArgBytes(arg []byte) *InsertStmt {
	return s.positionalArg(nullBytes(arg))
}

// ArgBytesName supplies a binary value for the named parameter; a nil slice
// binds a NULL.
func (s *InsertStmt) ArgBytesName(name string, arg []byte) *InsertStmt {
	return s.namedArg(name, nullBytes(arg))
}

// ArgBlobReader appends a positional binary argument read from arg at bind
// time; a nil reader binds a NULL.
func (s *InsertStmt) ArgBlobReader(arg io.Reader) *InsertStmt {
	return s.positionalArg(nullBlobReader(arg))
}

// ArgBlobReaderName supplies a binary value read from arg at bind time; a
// nil reader binds a NULL.
func (s *InsertStmt) ArgBlobReaderName(name string, arg io.Reader) *InsertStmt {
	return s.namedArg(name, nullBlobReader(arg))
}

// ArgClobString appends a positional character-large-object argument; nil
// binds a NULL.
func (s *InsertStmt) ArgClobString(arg *string) *InsertStmt {
	return s.positionalArg(nullClobString(arg))
}

// ArgClobStringName supplies a character-large-object value for the named
// parameter; nil binds a NULL.
func (s *InsertStmt) ArgClobStringName(name string, arg *string) *InsertStmt {
	return s.namedArg(name, nullClobString(arg))
}

// ArgClobReader appends a positional character-large-object argument read
// from arg at bind time; a nil reader binds a NULL.
func (s *InsertStmt) ArgClobReader(arg io.Reader) *InsertStmt {
	return s.positionalArg(nullClobReader(arg))
}

// ArgClobReaderName supplies a character-large-object value read from arg at
// bind time; a nil reader binds a NULL.
func (s *InsertStmt) ArgClobReaderName(name string, arg io.Reader) *InsertStmt {
	return s.namedArg(name, nullClobReader(arg))
}

func (s *InsertStmt) positionalArg(a Arg) *InsertStmt {
	if s.named != nil {
		s.fail(ErrMixedParameters)
		return s
	}
	s.positional = append(s.positional, a)
	return s
}

func (s *InsertStmt) namedArg(name string, a Arg) *InsertStmt {
	if s.positional != nil {
		s.fail(ErrMixedParameters)
		return s
	}
	if s.named == nil {
		s.named = make(map[string]Arg)
	}
	// Accept both "x" and ":x"; a repeated name overwrites the prior value.
	s.named[strings.TrimPrefix(name, ":")] = a
	return s
}

// fail records a usage error. The first error wins; later calls keep
// chaining but the statement will refuse to execute.
func (s *InsertStmt) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Insert executes the statement and returns the affected-row count reported
// by the driver. No expectation is enforced; zero affected rows is a success.
func (s *InsertStmt) Insert(ctx context.Context) (int64, error) {
	return s.run(ctx, 0)
}

// InsertExact executes the statement and verifies that exactly expected rows
// were affected. A differing count yields a *WrongNumberOfRowsError carrying
// both counts. A non-positive expectation disables the check, making
// InsertExact equivalent to Insert with the count discarded.
func (s *InsertStmt) InsertExact(ctx context.Context, expected int64) error {
	_, err := s.run(ctx, expected)
	return err
}

// run is the single execution path: resolve SQL and arguments, prepare,
// bind, execute, check the row count, release the statement, and emit one
// diagnostic record. Usage errors (mixed styles, parse failures, missing
// named values) return before any driver interaction.
func (s *InsertStmt) run(ctx context.Context, expected int64) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}

	execSQL := s.sql
	args := s.positional
	if len(s.named) > 0 {
		parsed, err := parseNamed(s.sql)
		if err != nil {
			return 0, err
		}
		args, err = parsed.toArgs(s.named)
		if err != nil {
			return 0, err
		}
		execSQL = parsed.sqlToExecute
	}
	execSQL, err := rewritePlaceholders(execSQL, s.opts.placeholder)
	if err != nil {
		return 0, err
	}

	m := newMetric()
	var (
		code string
		vals []any
		rows int64
	)

	err = func() error {
		stmt, err := s.p.PrepareContext(ctx, execSQL)
		if err != nil {
			return err
		}
		defer closeQuietly(stmt, s.opts.logger)

		vals, err = driverValues(args)
		if err != nil {
			return err
		}
		m.checkpoint("prep")

		res, err := stmt.ExecContext(ctx, vals...)
		if err != nil {
			return err
		}
		rows, err = res.RowsAffected()
		if err != nil {
			return err
		}
		m.checkpoint("exec")

		if expected > 0 && rows != expected {
			code = s.opts.errorCode()
			return &WrongNumberOfRowsError{
				Expected:   expected,
				Actual:     rows,
				Code:       code,
				SQL:        execSQL,
				Args:       vals,
				redactArgs: !s.opts.logParameters,
			}
		}
		return nil
	}()
	m.done("close")

	if err != nil {
		var wrong *WrongNumberOfRowsError
		if !errors.As(err, &wrong) {
			code = s.opts.errorCode()
			err = &StatementError{
				Code:       code,
				SQL:        execSQL,
				Args:       vals,
				Err:        err,
				redactArgs: !s.opts.logParameters,
			}
		}
		logError(s.opts, m, execSQL, vals, code, err)
		return rows, err
	}
	logSuccess(s.opts, m, execSQL, vals, rows)
	return rows, nil
}
