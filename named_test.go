// named_test.go
package sqlexec

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNamed_OrderAndDuplicates(t *testing.T) {
	parsed, err := parseNamed(`insert into t (a, b, c) values (:a, :b, :a)`)
	require.NoError(t, err)
	require.Equal(t, `insert into t (a, b, c) values (?, ?, ?)`, parsed.sqlToExecute)
	require.Equal(t, []string{"a", "b", "a"}, parsed.names)

	one := int64(1)
	two := int64(2)
	args, err := parsed.toArgs(map[string]Arg{
		"a": nullInt64(&one),
		"b": nullInt64(&two),
	})
	require.NoError(t, err)
	require.Len(t, args, 3)

	vals, err := driverValues(args)
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), int64(2), int64(1)}, vals)
}

func TestParseNamed_NoTokens(t *testing.T) {
	in := `insert into t (x) values (?)`
	parsed, err := parseNamed(in)
	require.NoError(t, err)
	require.Equal(t, in, parsed.sqlToExecute)
	require.Empty(t, parsed.names)
}

func TestParseNamed_LiteralsUntouched(t *testing.T) {
	in := `select ':x', ":y", ` + "`:z`" + ` from t`
	parsed, err := parseNamed(in)
	require.NoError(t, err)
	require.Equal(t, in, parsed.sqlToExecute)
	require.Empty(t, parsed.names)
}

func TestParseNamed_EscapedQuotes(t *testing.T) {
	in := `select 'it''s :not a param' where x = :x`
	parsed, err := parseNamed(in)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, parsed.names)
	require.Contains(t, parsed.sqlToExecute, `'it''s :not a param'`)
	require.True(t, strings.HasSuffix(parsed.sqlToExecute, "x = ?"))
}

func TestParseNamed_CommentsAndDollarQuotes(t *testing.T) {
	in := `
-- :line_comment
/* :block_comment */
$tag$ :dollar $tag$
insert into t (x) values (:ok)
`
	parsed, err := parseNamed(in)
	require.NoError(t, err)
	require.Equal(t, []string{"ok"}, parsed.names)
	require.Contains(t, parsed.sqlToExecute, ":line_comment")
	require.Contains(t, parsed.sqlToExecute, ":block_comment")
	require.Contains(t, parsed.sqlToExecute, ":dollar")
	require.Contains(t, parsed.sqlToExecute, "values (?)")
}

func TestParseNamed_BareColonAndCasts(t *testing.T) {
	in := `select x ::int, y : z, :n1`
	parsed, err := parseNamed(in)
	require.NoError(t, err)
	require.Equal(t, []string{"n1"}, parsed.names)
	require.Contains(t, parsed.sqlToExecute, "::int")
	require.Contains(t, parsed.sqlToExecute, "y : z")
}

func TestParseNamed_IdentifierCharacters(t *testing.T) {
	parsed, err := parseNamed(`values (:ok1, :ok_2, :_lead, :x9)`)
	require.NoError(t, err)
	require.Equal(t, []string{"ok1", "ok_2", "_lead", "x9"}, parsed.names)
}

func TestParseNamed_CaseSensitive(t *testing.T) {
	parsed, err := parseNamed(`values (:Name, :name)`)
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "name"}, parsed.names)

	v := "x"
	_, err = parsed.toArgs(map[string]Arg{"name": nullString(&v)})
	var missing *MissingParameterError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "Name", missing.Name)
}

func TestParseNamed_Unterminated(t *testing.T) {
	for _, in := range []string{"'abc", `"abc`, "`abc", "/* abc", "$tag$ abc"} {
		_, err := parseNamed(in)
		require.Error(t, err, "input %q", in)
	}
}

func TestToArgs_MissingName(t *testing.T) {
	parsed, err := parseNamed(`values (:x, :y)`)
	require.NoError(t, err)

	v := int64(1)
	_, err = parsed.toArgs(map[string]Arg{"x": nullInt64(&v)})
	var missing *MissingParameterError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "y", missing.Name)
	require.Contains(t, err.Error(), ":y")
}

func TestToArgs_TypedNullSatisfiesName(t *testing.T) {
	parsed, err := parseNamed(`values (:x)`)
	require.NoError(t, err)

	args, err := parsed.toArgs(map[string]Arg{"x": nullInt64(nil)})
	require.NoError(t, err)
	require.Len(t, args, 1)
	require.True(t, args[0].null)
}

func TestRewritePlaceholders_Dialects(t *testing.T) {
	in := `insert into t (a, b) values (?, ?)`
	for _, tc := range []struct {
		ph   Placeholder
		want string
	}{
		{PlaceholderQuestion, in},
		{PlaceholderDollar, `insert into t (a, b) values ($1, $2)`},
		{PlaceholderAtP, `insert into t (a, b) values (@p1, @p2)`},
		{PlaceholderColonNum, `insert into t (a, b) values (:1, :2)`},
	} {
		got, err := rewritePlaceholders(in, tc.ph)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}

func TestRewritePlaceholders_SkipsLiteralsAndComments(t *testing.T) {
	in := `select '?', "?", $$ ? $$, -- ? line
/* ? block */ ? as bind`
	got, err := rewritePlaceholders(in, PlaceholderDollar)
	require.NoError(t, err)
	require.Contains(t, got, "$1 as bind")
	require.Equal(t, 1, strings.Count(got, "$1"))
	require.Contains(t, got, `'?'`)
	require.Contains(t, got, "-- ? line")
}

func TestRewritePlaceholders_TwoDigitNumbering(t *testing.T) {
	in := "?" + strings.Repeat(",?", 11)
	got, err := rewritePlaceholders(in, PlaceholderAtP)
	require.NoError(t, err)
	require.Contains(t, got, "@p12")
	require.NotContains(t, got, "?")
}

func TestRewritePlaceholders_Unterminated(t *testing.T) {
	// Raw caller SQL reaches the rewriter on the positional passthrough
	// path, so broken literals must surface as errors, not scans past the
	// end of the text.
	for _, in := range []string{
		"'abc",
		"x = 'abc",
		`"abc`,
		"`abc",
		"/* abc",
		"$tag$ abc",
	} {
		for _, ph := range []Placeholder{PlaceholderDollar, PlaceholderAtP, PlaceholderColonNum} {
			_, err := rewritePlaceholders(in, ph)
			require.Error(t, err, "input %q placeholder %v", in, ph)
		}
	}
}

func TestPlaceholderFor(t *testing.T) {
	require.Equal(t, PlaceholderDollar, PlaceholderFor("postgres"))
	require.Equal(t, PlaceholderDollar, PlaceholderFor("lib/pq"))
	require.Equal(t, PlaceholderAtP, PlaceholderFor("sqlserver"))
	require.Equal(t, PlaceholderColonNum, PlaceholderFor("oracle"))
	require.Equal(t, PlaceholderQuestion, PlaceholderFor("sqlite3"))
}

func TestParseNamed_ErrorIsNotMissingParameter(t *testing.T) {
	_, err := parseNamed("'oops")
	var missing *MissingParameterError
	require.False(t, errors.As(err, &missing))
}
