// sqlexec.go
package sqlexec

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

// Preparer is implemented by *sql.DB, *sql.Tx, *sql.Conn, and any wrapper
// that can produce a prepared statement for a SQL text.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// options carries the per-statement execution settings. Configure with the
// Option functions passed to [Insert].
type options struct {
	logger        *zap.Logger
	placeholder   Placeholder
	logParameters bool
	errorCode     func() string
}

func defaultOptions() options {
	return options{
		logger:        zap.NewNop(),
		placeholder:   PlaceholderQuestion,
		logParameters: true,
		errorCode:     newErrorCode,
	}
}

// Option configures a statement. Options apply to the one statement they are
// passed with; there is no global state.
type Option func(*options)

// WithLogger sets the logger that receives the structured diagnostic record
// emitted for every execution (success at debug level, failure at error
// level). The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPlaceholder selects the positional placeholder style of the target
// database. The rewrite is applied to the resolved SQL, whether it came from
// named-parameter translation or was written positionally. The default is
// PlaceholderQuestion, which leaves ? placeholders untouched.
func WithPlaceholder(ph Placeholder) Option {
	return func(o *options) { o.placeholder = ph }
}

// WithLogParameters controls whether resolved argument values appear in the
// diagnostic log record. SQL text and phase timings are always logged.
// Parameters are logged by default; disable this when argument values are
// sensitive even to log readers.
func WithLogParameters(on bool) Option {
	return func(o *options) { o.logParameters = on }
}

// WithErrorCode replaces the correlation-code generator used when an
// execution fails. The default generates a UUID per failure.
func WithErrorCode(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.errorCode = gen
		}
	}
}
