package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

// Purpose is the statement kind a literal is rendered for.
type Purpose int

const (
	PurposeSelect Purpose = iota
	PurposeInsert
	PurposeUpdate
	PurposeDelete
)

func (p Purpose) String() string {
	switch p {
	case PurposeSelect:
		return "select"
	case PurposeInsert:
		return "insert"
	case PurposeUpdate:
		return "update"
	case PurposeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Literal renders v as a SQL literal for this domain. All quoting goes
// through the context's dialect.
func (d *Domain) Literal(ctx *emit.Context, purpose Purpose, v any) string {
	if v == nil {
		return "NULL"
	}
	switch d.desc.kind {
	case core.DataTypeJSON:
		if _, ok := v.(string); !ok {
			b, err := json.Marshal(v)
			if err == nil {
				return ctx.Dialect.QuoteString(string(b))
			}
		}
	case core.DataTypeNativeEnum:
		if s, ok := v.(string); ok {
			for i, value := range d.desc.enumValues {
				if value == s {
					return ctx.Literal(i)
				}
			}
		}
	case core.DataTypeDate:
		if t, ok := v.(time.Time); ok {
			return ctx.Dialect.QuoteString(t.Format(dialect.DateLayout))
		}
	case core.DataTypeDateTime:
		if t, ok := v.(time.Time); ok {
			return ctx.Dialect.QuoteString(t.Format(dialect.DateTimeLayout))
		}
	case core.DataTypeArray:
		return d.arrayLiteral(ctx, purpose, v)
	}
	return ctx.Literal(v)
}

// LiteralFragment defers Literal to render time.
func (d *Domain) LiteralFragment(purpose Purpose, v any) emit.Fragment {
	return emit.Func(func(ctx *emit.Context) string {
		return d.Literal(ctx, purpose, v)
	})
}

func (d *Domain) arrayLiteral(ctx *emit.Context, purpose Purpose, v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return ctx.Literal(v)
	}
	if !ctx.Dialect.SupportsArrays() || d.elem == nil {
		b, err := json.Marshal(v)
		if err != nil {
			return ctx.Literal(v)
		}
		return ctx.Dialect.QuoteString(string(b))
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = d.elem.Literal(ctx, purpose, rv.Index(i).Interface())
	}
	return "ARRAY[" + strings.Join(parts, ", ") + "]"
}
