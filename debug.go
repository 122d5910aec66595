// debug.go
package sqlexec

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// newErrorCode is the default correlation-code generator. The code links a
// user-facing error to the server-side diagnostic record without exposing
// SQL or argument values across that boundary. Override per statement with
// [WithErrorCode].
func newErrorCode() string {
	return uuid.NewString()
}

// debugSQL renders a statement together with its resolved argument values
// for diagnostics. This string ends up in logs and in error text for trusted
// callers; it is never meant for end users.
func debugSQL(sqlText string, args []any) string {
	if len(args) == 0 {
		return sqlText
	}
	var b strings.Builder
	b.WriteString(sqlText)
	b.WriteString(" args=[")
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", a)
	}
	b.WriteByte(']')
	return b.String()
}

// diagnosticSQL is debugSQL honoring the parameter-suppression setting: when
// redacted, only the SQL text appears in error messages.
func diagnosticSQL(sqlText string, args []any, redact bool) string {
	if redact {
		return sqlText
	}
	return debugSQL(sqlText, args)
}

// logSuccess emits the single diagnostic record for a successful execution.
func logSuccess(o options, m *metric, sqlText string, args []any, rows int64) {
	fields := make([]zap.Field, 0, 8)
	fields = append(fields, zap.String("sql", sqlText), zap.Int64("rows", rows))
	if o.logParameters {
		fields = append(fields, zap.Any("params", args))
	}
	fields = append(fields, m.fields()...)
	o.logger.Debug("insert succeeded", fields...)
}

// logError emits the single diagnostic record for a failed execution. The
// error code in the record matches the one carried by the returned error.
func logError(o options, m *metric, sqlText string, args []any, code string, err error) {
	fields := make([]zap.Field, 0, 9)
	fields = append(fields, zap.String("error_code", code), zap.String("sql", sqlText))
	if o.logParameters {
		fields = append(fields, zap.Any("params", args))
	}
	fields = append(fields, m.fields()...)
	fields = append(fields, zap.Error(err))
	o.logger.Error("insert failed", fields...)
}
