package table

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/domain"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

// Row maps column names to values. A value that is an emit.Fragment is
// rendered as a parenthesised SQL expression.
type Row map[string]any

// InsertOptions configures Insert.
type InsertOptions struct {
	// Emittable filters candidate columns; nil keeps every column.
	Emittable func(column string) bool
	// Where is appended verbatim after VALUES.
	Where emit.Fragment
	// OnConflict is appended verbatim after Where.
	OnConflict emit.Fragment
	Returning  Returning
}

func (o InsertOptions) withDefaults(def InsertOptions) InsertOptions {
	if o.Emittable == nil {
		o.Emittable = def.Emittable
	}
	if o.Where == nil {
		o.Where = def.Where
	}
	if o.OnConflict == nil {
		o.OnConflict = def.OnConflict
	}
	if o.Returning.IsZero() {
		o.Returning = def.Returning
	}
	return o
}

// Insert returns an INSERT statement for rows. Candidate columns are those
// not excluded from inserts, in declaration order, filtered by Emittable.
// Optional-in-insert columns are dropped when no row sets them, and must
// then be set by every row. Missing values take the column's caller-side
// default, or NULL. Caller-side defaults are evaluated here, so rendering
// is deterministic.
func (d *Definition) Insert(rows []Row, opts InsertOptions) (emit.Statement, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("table %s: %w", d.name, ErrNoRows)
	}
	opts = opts.withDefaults(d.opts.InsertDefaults)
	if err := opts.Returning.validate(d); err != nil {
		return nil, err
	}

	for _, row := range rows {
		for key := range row {
			col, ok := d.Column(key)
			if !ok {
				return nil, &UnknownColumnError{Table: d.name, Column: key}
			}
			if col.ExcludedFromInsert {
				return nil, &UnknownColumnError{Table: d.name, Column: key, Reason: "column is generated and excluded from inserts"}
			}
		}
	}

	var columns []*Column
	for _, c := range d.columns {
		if c.ExcludedFromInsert {
			continue
		}
		if opts.Emittable != nil && !opts.Emittable(c.Name) {
			continue
		}
		if c.OptionalInInsert {
			switch n := rowsSetting(rows, c.Name); {
			case n == 0:
				continue
			case n < len(rows):
				return nil, fmt.Errorf("table %s column %s: %w", d.name, c.Name, ErrMixedRows)
			}
		}
		columns = append(columns, c)
	}

	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = make([]any, len(columns))
		for j, c := range columns {
			v, ok := row[c.Name]
			if !ok {
				v, _ = c.Domain.CallerDefault()
			}
			values[i][j] = v
		}
	}

	return emit.Stmt(emit.Func(func(ctx *emit.Context) string {
		names := d.Naming(ctx)
		colNames := make([]string, len(columns))
		for i, c := range columns {
			colNames[i] = names.ColumnName(c.Name)
		}

		tuples := make([]string, len(values))
		for i, row := range values {
			parts := make([]string, len(row))
			for j, v := range row {
				parts[j] = renderValue(ctx, columns[j].Domain, v)
			}
			tuples[i] = "(" + strings.Join(parts, ", ") + ")"
		}

		var b strings.Builder
		b.WriteString("INSERT INTO ")
		b.WriteString(d.QualifiedName(ctx))
		b.WriteString(" (")
		b.WriteString(strings.Join(colNames, ", "))
		b.WriteString(")")
		if len(tuples) > 1 {
			b.WriteString("\n       ")
		} else {
			b.WriteString(" ")
		}
		b.WriteString("VALUES ")
		b.WriteString(strings.Join(tuples, ",\n              "))
		for _, f := range []emit.Fragment{opts.Where, opts.OnConflict} {
			if f == nil {
				continue
			}
			if s := f.SQL(ctx); s != "" {
				b.WriteString(" ")
				b.WriteString(s)
			}
		}
		if !opts.Returning.IsZero() {
			if !ctx.Dialect.SupportsReturning() {
				ctx.Logger.Warn("dialect does not support RETURNING",
					"dialect", ctx.Dialect.Name, "table", d.name)
			}
			b.WriteString(" RETURNING ")
			b.WriteString(opts.Returning.render(ctx, d))
		}
		return b.String()
	})), nil
}

func rowsSetting(rows []Row, column string) int {
	n := 0
	for _, r := range rows {
		if _, ok := r[column]; ok {
			n++
		}
	}
	return n
}

func renderValue(ctx *emit.Context, dom *domain.Domain, v any) string {
	if f, ok := v.(emit.Fragment); ok {
		return "(" + f.SQL(ctx) + ")"
	}
	return dom.Literal(ctx, domain.PurposeInsert, v)
}
