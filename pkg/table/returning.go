package table

import (
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

type returningKind int

const (
	returnNothing returningKind = iota
	returnAll
	returnPrimaryKeys
	returnColumns
	returnExprs
)

// Returning selects what a DML statement returns.
// The zero value returns nothing.
type Returning struct {
	kind    returningKind
	columns []string
	exprs   []emit.Fragment
}

// ReturnAll returns every column (*).
func ReturnAll() Returning { return Returning{kind: returnAll} }

// ReturnPrimaryKeys returns the primary key columns, or * when there are none.
func ReturnPrimaryKeys() Returning { return Returning{kind: returnPrimaryKeys} }

// ReturnColumns returns the named columns.
func ReturnColumns(columns ...string) Returning {
	return Returning{kind: returnColumns, columns: columns}
}

// ReturnExprs returns arbitrary expressions.
func ReturnExprs(exprs ...emit.Fragment) Returning {
	return Returning{kind: returnExprs, exprs: exprs}
}

// IsZero reports whether r returns nothing.
func (r Returning) IsZero() bool { return r.kind == returnNothing }

// validate checks named columns against the definition.
func (r Returning) validate(d *Definition) error {
	for _, c := range r.columns {
		if _, ok := d.Column(c); !ok {
			return &UnknownColumnError{Table: d.name, Column: c, Reason: "not a column of this table"}
		}
	}
	return nil
}

func (r Returning) render(ctx *emit.Context, d *Definition) string {
	names := d.Naming(ctx)
	switch r.kind {
	case returnAll:
		return "*"
	case returnPrimaryKeys:
		pks := d.PrimaryKeys()
		if len(pks) == 0 {
			return "*"
		}
		out := make([]string, len(pks))
		for i, c := range pks {
			out[i] = names.ColumnName(c.Name)
		}
		return strings.Join(out, ", ")
	case returnColumns:
		out := make([]string, len(r.columns))
		for i, c := range r.columns {
			out[i] = names.ColumnName(c)
		}
		return strings.Join(out, ", ")
	case returnExprs:
		return emit.List(toAny(r.exprs)...).SQL(ctx)
	default:
		return ""
	}
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
