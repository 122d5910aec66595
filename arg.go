// arg.go
package sqlexec

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// argKind tags an Arg with the SQL data kind it binds as. The kind is kept
// even when the value is absent so a NULL still binds as the right target
// type.
type argKind int

const (
	kindInt32 argKind = iota
	kindInt64
	kindFloat32
	kindFloat64
	kindDecimal
	kindString
	kindTime
	kindBytes
	kindBlobReader
	kindClobString
	kindClobReader
)

func (k argKind) String() string {
	switch k {
	case kindInt32:
		return "int32"
	case kindInt64:
		return "int64"
	case kindFloat32:
		return "float32"
	case kindFloat64:
		return "float64"
	case kindDecimal:
		return "decimal"
	case kindString:
		return "string"
	case kindTime:
		return "time"
	case kindBytes:
		return "bytes"
	case kindBlobReader:
		return "blob reader"
	case kindClobString:
		return "clob string"
	case kindClobReader:
		return "clob reader"
	}
	return "unknown"
}

// Arg is one statement argument: a value of a declared SQL kind, or a typed
// null of that kind. Arguments are created by the Arg* methods on
// [InsertStmt]; the zero Arg is a null of kind int32 and has no other use.
type Arg struct {
	kind  argKind
	null  bool
	value any
}

// The null* constructors mirror the statement adaptor: each accepts a
// possibly-nil input and produces an Arg that binds either the value or a
// NULL of the declared kind.

func nullInt32(v *int32) Arg {
	if v == nil {
		return Arg{kind: kindInt32, null: true}
	}
	return Arg{kind: kindInt32, value: *v}
}

func nullInt64(v *int64) Arg {
	if v == nil {
		return Arg{kind: kindInt64, null: true}
	}
	return Arg{kind: kindInt64, value: *v}
}

func nullFloat32(v *float32) Arg {
	if v == nil {
		return Arg{kind: kindFloat32, null: true}
	}
	return Arg{kind: kindFloat32, value: *v}
}

func nullFloat64(v *float64) Arg {
	if v == nil {
		return Arg{kind: kindFloat64, null: true}
	}
	return Arg{kind: kindFloat64, value: *v}
}

func nullDecimal(v *decimal.Decimal) Arg {
	if v == nil {
		return Arg{kind: kindDecimal, null: true}
	}
	return Arg{kind: kindDecimal, value: *v}
}

func nullString(v *string) Arg {
	if v == nil {
		return Arg{kind: kindString, null: true}
	}
	return Arg{kind: kindString, value: *v}
}

func nullTime(v *time.Time) Arg {
	if v == nil {
		return Arg{kind: kindTime, null: true}
	}
	return Arg{kind: kindTime, value: *v}
}

func nullBytes(v []byte) Arg {
	if v == nil {
		return Arg{kind: kindBytes, null: true}
	}
	return Arg{kind: kindBytes, value: v}
}

func nullBlobReader(v io.Reader) Arg {
	if v == nil {
		return Arg{kind: kindBlobReader, null: true}
	}
	return Arg{kind: kindBlobReader, value: v}
}

func nullClobString(v *string) Arg {
	if v == nil {
		return Arg{kind: kindClobString, null: true}
	}
	return Arg{kind: kindClobString, value: *v}
}

func nullClobReader(v io.Reader) Arg {
	if v == nil {
		return Arg{kind: kindClobReader, null: true}
	}
	return Arg{kind: kindClobReader, value: v}
}

// driverValues converts the ordered argument list into values database/sql
// can bind by position. Typed nulls become the invalid sql.Null* value for
// their kind (a nil []byte for binary kinds), so the driver binds a NULL of
// the right type rather than seeing a missing parameter. Reader-backed kinds
// are drained here; database/sql has no incremental blob/clob binding.
func driverValues(args []Arg) ([]any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		v, err := a.driverValue()
		if err != nil {
			return nil, fmt.Errorf("sqlexec: bind parameter %d (%s): %w", i+1, a.kind, err)
		}
		out[i] = v
	}
	return out, nil
}

func (a Arg) driverValue() (any, error) {
	if a.null {
		switch a.kind {
		case kindInt32:
			return sql.NullInt32{}, nil
		case kindInt64:
			return sql.NullInt64{}, nil
		case kindFloat32, kindFloat64:
			return sql.NullFloat64{}, nil
		case kindDecimal:
			return decimal.NullDecimal{}, nil
		case kindString, kindClobString, kindClobReader:
			return sql.NullString{}, nil
		case kindTime:
			return sql.NullTime{}, nil
		case kindBytes, kindBlobReader:
			return []byte(nil), nil
		}
		return nil, fmt.Errorf("null of unknown kind %d", a.kind)
	}
	switch a.kind {
	case kindFloat32:
		// database/sql converts float32 itself, but widening here keeps the
		// logged value identical to the bound value.
		return float64(a.value.(float32)), nil
	case kindBlobReader:
		b, err := io.ReadAll(a.value.(io.Reader))
		if err != nil {
			return nil, err
		}
		return b, nil
	case kindClobReader:
		b, err := io.ReadAll(a.value.(io.Reader))
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
	return a.value, nil
}

// closeQuietly releases a prepared statement. A close failure is logged and
// swallowed so it never masks the primary outcome of the execution.
func closeQuietly(stmt *sql.Stmt, log *zap.Logger) {
	if stmt == nil {
		return
	}
	if err := stmt.Close(); err != nil {
		log.Warn("failed to close prepared statement", zap.Error(err))
	}
}
