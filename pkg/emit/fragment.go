package emit

import (
	"fmt"
	"reflect"
	"strings"
)

// Fragment is a lazily evaluated piece of SQL text.
type Fragment interface {
	SQL(ctx *Context) string
}

// Func adapts a function to Fragment.
type Func func(ctx *Context) string

// SQL calls f.
func (f Func) SQL(ctx *Context) string {
	return f(ctx)
}

// Text is pre-escaped SQL text rendered verbatim.
type Text string

// SQL returns the text unchanged.
func (t Text) SQL(*Context) string {
	return string(t)
}

// Render materializes v. Fragments render recursively with ctx, slices
// render each element and join them with newlines, and any other value is
// treated as pre-escaped text.
func Render(ctx *Context, v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case Fragment:
		return val.SQL(ctx)
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	}
	if items, ok := sliceItems(v); ok {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, Render(ctx, item))
		}
		return strings.Join(parts, "\n")
	}
	return fmt.Sprint(v)
}

// sliceItems returns the elements of v when v is a slice or array.
func sliceItems(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// flatten expands nested slices into a single list of leaves.
func flatten(entries []any) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		if _, isFragment := e.(Fragment); !isFragment {
			if items, ok := sliceItems(e); ok {
				if _, isBytes := e.([]byte); !isBytes {
					out = append(out, flatten(items)...)
					continue
				}
			}
		}
		out = append(out, e)
	}
	return out
}

// Sprintf returns a fragment that formats its arguments at render time.
// Arguments are rendered with Render before formatting with %s.
func Sprintf(format string, args ...any) Fragment {
	return Func(func(ctx *Context) string {
		rendered := make([]any, len(args))
		for i, a := range args {
			rendered[i] = Render(ctx, a)
		}
		return fmt.Sprintf(format, rendered...)
	})
}

// Join renders parts (flattening nested slices) and joins them with sep.
// Empty renders are skipped.
func Join(sep string, parts ...any) Fragment {
	return Func(func(ctx *Context) string {
		leaves := flatten(parts)
		out := make([]string, 0, len(leaves))
		for _, p := range leaves {
			if s := Render(ctx, p); s != "" {
				out = append(out, s)
			}
		}
		return strings.Join(out, sep)
	})
}

// List joins parts with ", ".
func List(parts ...any) Fragment {
	return Join(", ", parts...)
}

// Parens wraps the rendered value in parentheses.
func Parens(v any) Fragment {
	return Func(func(ctx *Context) string {
		return "(" + Render(ctx, v) + ")"
	})
}

// TableName renders a table name through the context's naming strategy.
func TableName(name string) Fragment {
	return Func(func(ctx *Context) string {
		return ctx.NamingStrategy().TableName(name)
	})
}

// ColumnName renders a column name through the context's naming strategy.
func ColumnName(name string) Fragment {
	return Func(func(ctx *Context) string {
		return ctx.NamingStrategy().ColumnName(name)
	})
}

// Literal renders v through the dialect's literal quoting.
func Literal(v any) Fragment {
	return Func(func(ctx *Context) string {
		return ctx.Literal(v)
	})
}
