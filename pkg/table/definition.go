package table

import (
	"github.com/leapstack-labs/sqlaide/pkg/emit"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
	"github.com/leapstack-labs/sqlaide/pkg/naming"
)

// Definition is the compiled model of one table. It is immutable after
// Build apart from its append-only lint issues, and renders as a
// CREATE TABLE statement.
type Definition struct {
	lint.Issues

	arena       *Arena
	id          TableID
	name        string
	shape       Shape
	columns     []*Column
	constraints []Constraint
	opts        Options
}

func (d *Definition) ID() TableID      { return d.id }
func (d *Definition) Name() string     { return d.name }
func (d *Definition) Shape() Shape     { return d.shape }
func (d *Definition) Options() Options { return d.opts }
func (d *Definition) Arena() *Arena    { return d.arena }
func (d *Definition) Columns() []*Column {
	out := make([]*Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// Column returns a column by name.
func (d *Definition) Column(name string) (*Column, bool) {
	for _, c := range d.columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// PrimaryKeys returns the primary key columns in declaration order.
func (d *Definition) PrimaryKeys() []*Column {
	return d.filter((*Column).IsPrimaryKey)
}

// UniqueColumns returns the single-column unique columns in declaration order.
func (d *Definition) UniqueColumns() []*Column {
	return d.filter((*Column).IsUnique)
}

// ForeignKeys returns the foreign key columns in declaration order.
func (d *Definition) ForeignKeys() []*Column {
	return d.filter((*Column).IsForeignKey)
}

// Constraints returns the constraints supplied by the Constraints callback.
func (d *Definition) Constraints() []Constraint {
	return d.constraints
}

func (d *Definition) filter(keep func(*Column) bool) []*Column {
	var out []*Column
	for _, c := range d.columns {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Ref returns a placeholder referencing column of this table.
func (d *Definition) Ref(column string) Placeholder {
	return Placeholder{arena: d.arena, table: d.id, column: column, nature: NatureReference}
}

// BelongsTo returns a belongs-to placeholder referencing column of this table.
func (d *Definition) BelongsTo(column string) Placeholder {
	return d.Ref(column).As(NatureBelongsTo)
}

// Naming returns the naming strategy for this table, applying its namespace.
func (d *Definition) Naming(ctx *emit.Context) naming.Strategy {
	return ctx.NamingStrategy(func(o *naming.Options) {
		if d.opts.Namespace != "" {
			o.Namespace = d.opts.Namespace
		}
	})
}

// QualifiedName renders the table name.
func (d *Definition) QualifiedName(ctx *emit.Context) string {
	return d.Naming(ctx).TableName(d.name)
}

// SQL renders the CREATE TABLE statement without a terminator.
func (d *Definition) SQL(ctx *emit.Context) string {
	lines := make([]string, 0, len(d.columns)+len(d.constraints)+1)
	for _, c := range d.columns {
		lines = append(lines, c.SQL(ctx))
	}
	lines = append(lines, d.afterColumns(ctx)...)

	p := emit.NewPrinter(ctx.Text.Indent(emit.PurposeColumn))
	p.Write(ctx.Text.Indent(emit.PurposeCreateTable))
	p.Write("CREATE ")
	if d.opts.Temp {
		p.Write("TEMP ")
	}
	p.Write("TABLE ")
	if d.opts.Idempotent {
		p.Write("IF NOT EXISTS ")
	}
	p.Write(d.QualifiedName(ctx))
	p.Write(" (")
	p.Writeln()
	p.Indent()
	p.FormatList(len(lines), func(i int) { p.Write(lines[i]) }, ",", true)
	p.Dedent()
	p.Writeln()
	p.Write(")")
	return p.String()
}

// IsStatement marks the definition as a terminated statement.
func (d *Definition) IsStatement() {}

// afterColumns renders, in order: foreign key clauses, derived unique
// constraints, callback constraints and the options partial. Foreign key
// clauses resolve table names at render time so self-references name this
// table.
func (d *Definition) afterColumns(ctx *emit.Context) []string {
	var out []string
	names := d.Naming(ctx)
	for _, c := range d.ForeignKeys() {
		src := c.Reference.Source
		srcName := names.TableName(src.TableName())
		if srcDef, ok := d.arena.Definition(src.Table()); ok {
			srcName = srcDef.QualifiedName(ctx)
		}
		out = append(out, "FOREIGN KEY("+names.ColumnName(c.Name)+") REFERENCES "+
			srcName+"("+names.ColumnName(src.Column())+")")
	}
	for _, c := range d.UniqueColumns() {
		out = append(out, "UNIQUE("+names.ColumnName(c.Name)+")")
	}
	for _, c := range d.constraints {
		if s := c.SQL(ctx); s != "" {
			out = append(out, s)
		}
	}
	if d.opts.SQLPartial != nil {
		if s := d.opts.SQLPartial.SQL(ctx); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Drop renders DROP TABLE [IF EXISTS] <name>.
func (d *Definition) Drop(ifExists bool) emit.Statement {
	return emit.Stmt(emit.Func(func(ctx *emit.Context) string {
		if ifExists {
			return "DROP TABLE IF EXISTS " + d.QualifiedName(ctx)
		}
		return "DROP TABLE " + d.QualifiedName(ctx)
	}))
}

// Lint runs the registered lint rules against the definition and returns
// its issues. Repeated calls do not duplicate issues.
func (d *Definition) Lint(cfg *lint.Config) []lint.Issue {
	lint.NewAnalyzer(cfg).WithOptions(lint.Options{
		"ignoreMissingPrimaryKey": d.opts.Lint.IgnoreMissingPrimaryKey,
		"ignorePluralName":        d.opts.Lint.IgnorePluralName,
	}).Analyze(d, d)
	return d.LintIssues()
}
