package table

import (
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

// UniqueConstraint returns a multi-column UNIQUE constraint.
func UniqueConstraint(columns ...string) Constraint {
	return NamedUniqueConstraint("", columns...)
}

// NamedUniqueConstraint returns a UNIQUE constraint with an optional
// constraint name.
func NamedUniqueConstraint(name string, columns ...string) Constraint {
	return emit.Func(func(ctx *emit.Context) string {
		names := ctx.NamingStrategy()
		quoted := make([]string, len(columns))
		for i, c := range columns {
			quoted[i] = names.ColumnName(c)
		}
		sql := "UNIQUE(" + strings.Join(quoted, ", ") + ")"
		if name != "" {
			sql = "CONSTRAINT " + names.ColumnName(name) + " " + sql
		}
		return sql
	})
}

// Check returns a CHECK constraint around a verbatim SQL expression.
func Check(expr string) Constraint {
	return emit.Text("CHECK (" + expr + ")")
}
