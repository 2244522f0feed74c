package emit

import (
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

// Statement marks a fragment that receives the dialect terminator when it
// appears at the top level of a Sequence.
type Statement interface {
	Fragment
	IsStatement()
}

type statement struct {
	Fragment
}

func (statement) IsStatement() {}

// Stmt marks f as a statement.
func Stmt(f Fragment) Statement {
	if s, ok := f.(Statement); ok {
		return s
	}
	return statement{Fragment: f}
}

// Stmtf is Stmt(Sprintf(format, args...)).
func Stmtf(format string, args ...any) Statement {
	return Stmt(Sprintf(format, args...))
}

// Pragma is an engine directive. It renders on embedded dialects and as a
// comment elsewhere. It is never terminated by a Sequence.
func Pragma(directive string) Fragment {
	return Func(func(ctx *Context) string {
		if ctx.Dialect.Family == core.FamilyEmbedded {
			return "PRAGMA " + directive + ";"
		}
		return ctx.Text.Comments("PRAGMA "+directive+" skipped for "+ctx.Dialect.Identity(dialect.IdentityPresentation), "")
	})
}

// Comment renders text as SQL line comments.
func Comment(text string) Fragment {
	return Func(func(ctx *Context) string {
		return ctx.Text.Comments(text, "")
	})
}

// Batch renders the dialect's batch separator, or nothing when the
// dialect has none.
func Batch() Fragment {
	return Func(func(ctx *Context) string {
		return ctx.Dialect.BatchSeparator()
	})
}

// Sequence renders entries newline-joined. Nested slices flatten, statements
// get the dialect terminator and empty renders are dropped.
func Sequence(entries ...any) Fragment {
	return Func(func(ctx *Context) string {
		leaves := flatten(entries)
		out := make([]string, 0, len(leaves))
		for _, e := range leaves {
			s := Render(ctx, e)
			if s == "" {
				continue
			}
			if _, ok := e.(Statement); ok && !strings.HasSuffix(s, ctx.Dialect.Terminator()) {
				s += ctx.Dialect.Terminator()
			}
			out = append(out, s)
		}
		return strings.Join(out, "\n")
	})
}
