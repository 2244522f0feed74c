package table

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/domain"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

// Criteria maps column names to filter values. A plain value compares with
// =, nil compares with IS NULL and a Comparison uses its operator. Ordering
// comparisons against nil and an empty In are rejected by Select.
type Criteria map[string]any

// Comparison is a filter operator with its operand.
type Comparison struct {
	op     string
	values []any
}

func Eq(v any) Comparison  { return Comparison{op: "=", values: []any{v}} }
func Gt(v any) Comparison  { return Comparison{op: ">", values: []any{v}} }
func Lt(v any) Comparison  { return Comparison{op: "<", values: []any{v}} }
func Gte(v any) Comparison { return Comparison{op: ">=", values: []any{v}} }
func Lte(v any) Comparison { return Comparison{op: "<=", values: []any{v}} }

// In matches any of values.
func In(values ...any) Comparison { return Comparison{op: "IN", values: values} }

func (c Comparison) render(ctx *emit.Context, dom *domain.Domain, column string) string {
	if c.op == "IN" {
		parts := make([]string, len(c.values))
		for i, v := range c.values {
			parts[i] = selectValue(ctx, dom, v)
		}
		return column + " IN (" + strings.Join(parts, ", ") + ")"
	}
	v := c.values[0]
	if v == nil {
		return column + " IS NULL"
	}
	return column + " " + c.op + " " + selectValue(ctx, dom, v)
}

func (c Comparison) validate() error {
	switch {
	case c.op == "IN" && len(c.values) == 0:
		return fmt.Errorf("IN with no values: %w", ErrInvalidComparison)
	case c.op != "IN" && c.op != "=" && c.values[0] == nil:
		return fmt.Errorf("%s NULL: %w", c.op, ErrInvalidComparison)
	}
	return nil
}

func selectValue(ctx *emit.Context, dom *domain.Domain, v any) string {
	if f, ok := v.(emit.Fragment); ok {
		return "(" + f.SQL(ctx) + ")"
	}
	return dom.Literal(ctx, domain.PurposeSelect, v)
}

// SelectOptions configures Select.
type SelectOptions struct {
	// Returning defaults to the primary keys.
	Returning Returning
}

// Select returns SELECT <returning> FROM <table> [WHERE ...]. Criteria are
// ANDed in column declaration order.
func (d *Definition) Select(criteria Criteria, opts SelectOptions) (emit.Statement, error) {
	if opts.Returning.IsZero() {
		opts.Returning = ReturnPrimaryKeys()
	}
	if err := opts.Returning.validate(d); err != nil {
		return nil, err
	}

	for key := range criteria {
		col, ok := d.Column(key)
		if !ok {
			return nil, &UnknownColumnError{Table: d.name, Column: key}
		}
		if col.ExcludedFromFilter {
			return nil, &UnknownColumnError{Table: d.name, Column: key, Reason: "column is excluded from filter criteria"}
		}
	}

	type filter struct {
		col *Column
		cmp Comparison
	}
	var filters []filter
	for _, c := range d.columns {
		v, ok := criteria[c.Name]
		if !ok {
			continue
		}
		cmp, isCmp := v.(Comparison)
		if !isCmp {
			cmp = Eq(v)
		}
		if err := cmp.validate(); err != nil {
			return nil, fmt.Errorf("table %s column %s: %w", d.name, c.Name, err)
		}
		filters = append(filters, filter{col: c, cmp: cmp})
	}

	return emit.Stmt(emit.Func(func(ctx *emit.Context) string {
		names := d.Naming(ctx)
		sql := "SELECT " + opts.Returning.render(ctx, d) + " FROM " + d.QualifiedName(ctx)
		if len(filters) == 0 {
			return sql
		}
		where := make([]string, len(filters))
		for i, f := range filters {
			where[i] = f.cmp.render(ctx, f.col.Domain, names.ColumnName(f.col.Name))
		}
		return sql + " WHERE " + strings.Join(where, " AND ")
	})), nil
}
