package table

import (
	"github.com/leapstack-labs/sqlaide/pkg/domain"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

const (
	enumCodeColumn  = "code"
	enumValueColumn = "value"
)

// EnumPair is one row of a text-coded enum table.
type EnumPair struct {
	Code  string
	Value string
}

// EnumTable is a lookup table seeded with fixed rows.
type EnumTable struct {
	*Definition
	rows []Row
}

// OrdinalEnumTable builds a table whose integer codes are the positions of
// values. Only the Idempotent, Temp and Namespace fields of opts apply.
func OrdinalEnumTable(a *Arena, name string, opts Options, values ...string) (*EnumTable, error) {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{enumCodeColumn: i, enumValueColumn: v}
	}
	return buildEnumTable(a, name, opts, domain.Integer(), rows)
}

// TextEnumTable builds a table with caller-chosen text codes. opts is
// applied as in OrdinalEnumTable.
func TextEnumTable(a *Arena, name string, opts Options, pairs ...EnumPair) (*EnumTable, error) {
	rows := make([]Row, len(pairs))
	for i, p := range pairs {
		rows[i] = Row{enumCodeColumn: p.Code, enumValueColumn: p.Value}
	}
	return buildEnumTable(a, name, opts, domain.Text(), rows)
}

func buildEnumTable(a *Arena, name string, opts Options, code domain.Descriptor, rows []Row) (*EnumTable, error) {
	def, err := a.Build(name, Shape{
		PK(enumCodeColumn, code),
		Col(enumValueColumn, domain.Text()),
		CreatedAt(),
	}, Options{
		Idempotent: opts.Idempotent,
		Temp:       opts.Temp,
		Namespace:  opts.Namespace,
		Lint:       LintOptions{IgnorePluralName: true},
	})
	if err != nil {
		return nil, err
	}
	return &EnumTable{Definition: def, rows: rows}, nil
}

// Rows returns a copy of the seed rows.
func (e *EnumTable) Rows() []Row {
	out := make([]Row, len(e.rows))
	copy(out, e.rows)
	return out
}

// SeedDML renders one INSERT per seed row, leaving created_at to its
// default. An empty table renders a comment instead.
func (e *EnumTable) SeedDML() (emit.Fragment, error) {
	if len(e.rows) == 0 {
		return emit.Comment("no " + e.name + " seed rows"), nil
	}
	stmts, err := e.SeedStatements()
	if err != nil {
		return nil, err
	}
	return emit.Sequence(stmts), nil
}

// SeedStatements returns the seed inserts as separate statements, for
// callers that execute them one at a time.
func (e *EnumTable) SeedStatements() ([]emit.Statement, error) {
	opts := InsertOptions{
		Emittable: func(column string) bool { return column != "created_at" },
	}
	stmts := make([]emit.Statement, 0, len(e.rows))
	for _, row := range e.rows {
		stmt, err := e.Insert([]Row{row}, opts)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}
