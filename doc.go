/*
Package sqlexec is a small layer over database/sql for executing
parameterized INSERT-style statements. You write plain SQL with either ?
placeholders or :name tokens; sqlexec collects strongly-typed arguments,
rewrites named SQL into the positional form your driver accepts, binds
null-safe values, executes, and reports the outcome with enough context to
debug a production failure.

# Overview

Statements are built fluently and executed once:

	n := int32(5)
	label := "hi"
	err := sqlexec.Insert(db, `insert into t (x, y) values (:x, :y)`).
	    ArgInt32Name("x", &n).
	    ArgStringName("y", &label).
	    InsertExact(ctx, 1)

sqlexec works with *sql.DB, *sql.Tx, and *sql.Conn. It owns no connection
state: the prepared statement is acquired per execution and released on every
exit path.

# Parameter styles

A statement uses exactly one style. Positional Arg* calls bind to ?
placeholders in call order; Arg*Name calls bind :name tokens wherever they
appear, including repeated occurrences of the same name. Mixing the two on
one statement is a usage error, as is leaving a :name in the SQL without a
supplied value. Named tokens inside quoted strings, quoted identifiers,
comments, and PostgreSQL dollar-quoted blocks are never treated as
parameters.

# Typed nulls

Argument inputs are pointers (or nil-able slices and readers). A nil input
is not an omitted parameter: it binds a SQL NULL tagged with the declared
kind, so drivers that care about the NULL's target type see the right one.

# Diagnostics

Every execution emits exactly one structured log record (zap), carrying the
resolved SQL, the resolved argument values, and elapsed time for the
"prep", "exec", and "close" phases. Failures additionally carry an opaque
correlation code that appears in both the record and the returned error, so
a user-facing report can be matched to server-side detail without exposing
SQL or argument values. Argument logging can be switched off with
WithLogParameters when values are sensitive.

# Errors

Misuse (mixed styles, missing named values) surfaces before any driver
interaction. A row-count mismatch from InsertExact is a distinct
*WrongNumberOfRowsError; every other prepare/bind/execute failure is wrapped
in a *StatementError preserving the driver error as its cause. Match both
with errors.As. Statement release failures are logged and never override the
primary outcome.

# Compatibility

sqlexec targets any database/sql driver. Named SQL is rewritten to ? by
default; WithPlaceholder rewrites the positional form for PostgreSQL ($n),
SQL Server (@pn), or Oracle (:n) drivers.
*/
package sqlexec
