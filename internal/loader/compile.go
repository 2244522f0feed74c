package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlaide/internal/dag"
	"github.com/leapstack-labs/sqlaide/pkg/domain"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
	"github.com/leapstack-labs/sqlaide/pkg/table"
)

const (
	enumOrdinal = "ordinal"
	enumText    = "text"
)

var roles = map[string]func(name string, desc domain.Descriptor) table.ColumnSpec{
	"":        table.Col,
	"plain":   table.Col,
	"pk":      table.PK,
	"unique":  table.UniqueCol,
	"autoinc": func(name string, _ domain.Descriptor) table.ColumnSpec { return table.AutoIncPK(name) },
	"uuid":    func(name string, _ domain.Descriptor) table.ColumnSpec { return table.UADefaultablePK(name) },
}

var natures = map[string]table.Nature{
	"":           table.NatureReference,
	"reference":  table.NatureReference,
	"belongs_to": table.NatureBelongsTo,
	"extends":    table.NatureExtends,
	"inherits":   table.NatureInherits,
}

// Schema is a compiled schema document.
type Schema struct {
	Arena     *table.Arena
	Namespace string
	Enums     []*table.EnumTable
	Tables    []*table.Definition

	// Columns pairs each table's column documents with their domains.
	// Foreign key columns take their domain from the arena and are absent.
	Columns map[string][]domain.Described[ColumnDoc]
}

// CompileOption configures Compile.
type CompileOption func(*compiler)

// WithFactory sets the domain factory.
func WithFactory(f *domain.Factory) CompileOption {
	return func(c *compiler) { c.factory = f }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) CompileOption {
	return func(c *compiler) { c.logger = logger }
}

type compiler struct {
	doc     *Document
	factory *domain.Factory
	logger  *slog.Logger
	arena   *table.Arena
	schema  *Schema
}

// Compile builds every enum and table of doc into one arena, in document
// order, enums first. References to tables declared later in the document
// are forward references checked by Arena.Resolve. Every defect is
// reported, joined.
func Compile(doc *Document, opts ...CompileOption) (*Schema, error) {
	c := &compiler{doc: doc, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(c)
	}
	if c.factory == nil {
		c.factory = domain.NewFactory(domain.WithLogger(c.logger))
	}
	c.arena = table.NewArena(table.WithFactory(c.factory), table.WithLogger(c.logger))
	c.schema = &Schema{
		Arena:     c.arena,
		Namespace: doc.Namespace,
		Columns:   make(map[string][]domain.Described[ColumnDoc]),
	}

	for _, e := range doc.Enums {
		c.arena.Declare(e.Name)
	}
	for _, t := range doc.Tables {
		c.arena.Declare(t.Name)
	}

	var errs []error
	for _, e := range doc.Enums {
		enum, err := c.buildEnum(e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.schema.Enums = append(c.schema.Enums, enum)
	}
	for _, t := range doc.Tables {
		def, err := c.buildTable(t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.schema.Tables = append(c.schema.Tables, def)
	}
	if len(errs) == 0 {
		errs = append(errs, c.arena.Resolve())
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	c.logger.Debug("schema compiled",
		slog.Int("enums", len(c.schema.Enums)),
		slog.Int("tables", len(c.schema.Tables)))
	return c.schema, nil
}

func (c *compiler) buildEnum(e EnumDoc) (*table.EnumTable, error) {
	opts := table.Options{
		Idempotent: e.Idempotent,
		Namespace:  c.namespace(e.Namespace),
	}
	if e.Kind == enumText {
		pairs := make([]table.EnumPair, len(e.Pairs))
		for i, p := range e.Pairs {
			pairs[i] = table.EnumPair{Code: p.Code, Value: p.Value}
		}
		return table.TextEnumTable(c.arena, e.Name, opts, pairs...)
	}
	return table.OrdinalEnumTable(c.arena, e.Name, opts, e.Values...)
}

// namespace falls back to the document namespace.
func (c *compiler) namespace(ns string) string {
	if ns != "" {
		return ns
	}
	return c.doc.Namespace
}

func (c *compiler) buildTable(t TableDoc) (*table.Definition, error) {
	shape := make(table.Shape, 0, len(t.Columns))
	var described []domain.Described[ColumnDoc]
	for _, col := range t.Columns {
		if col.References != nil {
			ref, err := c.placeholder(t, col)
			if err != nil {
				return nil, err
			}
			spec := table.FK(col.Name, ref)
			spec.ExcludeFromFilter = col.NoFilter
			shape = append(shape, spec)
			continue
		}

		desc := Descriptor(col)
		d, err := domain.Describe(c.factory, col, desc, domain.Options{Identity: col.Name})
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.Name, err)
		}
		described = append(described, d)

		spec := roles[col.Role](col.Name, desc)
		if col.Role != "autoinc" && col.Role != "uuid" {
			spec.Domain = d.Domain
		}
		spec.OptionalInInsert = col.InsertOpt
		spec.ExcludeFromFilter = col.NoFilter
		shape = append(shape, spec)
	}

	def, err := c.arena.Build(t.Name, shape, table.Options{
		Idempotent:  t.Idempotent,
		Temp:        t.Temp,
		Namespace:   c.namespace(t.Namespace),
		Constraints: constraints(t),
		Lint: table.LintOptions{
			IgnoreMissingPrimaryKey: t.Lint.IgnoreMissingPrimaryKey,
			IgnorePluralName:        t.Lint.IgnorePluralName,
		},
	})
	if err != nil {
		return nil, err
	}
	c.schema.Columns[t.Name] = described
	return def, nil
}

// placeholder resolves a reference column. Built tables are referenced
// directly; later tables get a forward reference typed from the document.
func (c *compiler) placeholder(t TableDoc, col ColumnDoc) (table.Placeholder, error) {
	ref := col.References
	nature, ok := natures[ref.Nature]
	if !ok {
		return table.Placeholder{}, fmt.Errorf("table %s column %s: unknown reference nature %q", t.Name, col.Name, ref.Nature)
	}

	var p table.Placeholder
	switch {
	case ref.Table == t.Name:
		p = table.SelfRef(ref.Column)
	default:
		if src, built := c.arena.Lookup(ref.Table); built {
			p = src.Ref(ref.Column).As(nature)
			break
		}
		desc, found := c.referencedType(ref.Table, ref.Column)
		if !found {
			return table.Placeholder{}, &table.UnresolvedReferenceError{
				Table:        t.Name,
				Column:       col.Name,
				SourceTable:  ref.Table,
				SourceColumn: ref.Column,
				Reason:       "not declared in the schema document",
			}
		}
		p = c.arena.ForwardRef(c.arena.Declare(ref.Table), ref.Column, desc).As(nature)
	}
	if col.Optional || col.Nullable {
		p = p.Optional()
	}
	return p, nil
}

func (c *compiler) referencedType(tableName, column string) (domain.Descriptor, bool) {
	for _, e := range c.doc.Enums {
		if e.Name != tableName {
			continue
		}
		switch {
		case column == "code" && e.Kind == enumText:
			return domain.Text(), true
		case column == "code":
			return domain.Integer(), true
		case column == "value":
			return domain.Text(), true
		}
	}
	for _, t := range c.doc.Tables {
		if t.Name != tableName {
			continue
		}
		for _, col := range t.Columns {
			if col.Name == column && col.References == nil {
				return Descriptor(col), true
			}
		}
	}
	return domain.Descriptor{}, false
}

func constraints(t TableDoc) func(table.Shape, string) []table.Constraint {
	if len(t.Unique) == 0 && len(t.Checks) == 0 {
		return nil
	}
	return func(table.Shape, string) []table.Constraint {
		out := make([]table.Constraint, 0, len(t.Unique)+len(t.Checks))
		for _, cols := range t.Unique {
			out = append(out, table.UniqueConstraint(cols...))
		}
		for _, expr := range t.Checks {
			out = append(out, table.Check(expr))
		}
		return out
	}
}

// Descriptor converts a column document to a domain descriptor.
func Descriptor(col ColumnDoc) domain.Descriptor {
	var desc domain.Descriptor
	switch col.Role {
	case "autoinc":
		return domain.Integer()
	case "uuid":
		return domain.Text()
	}
	switch strings.ToLower(col.Type) {
	case "enum":
		desc = domain.NativeEnum(col.Values...)
	case "text_enum", "textenum":
		desc = domain.TextEnum(col.Values...)
	case "array":
		desc = domain.ArrayOf(Descriptor(ColumnDoc{Type: col.Elem}))
	case "varchar":
		desc = domain.VarChar(col.Max)
	default:
		desc = domain.Parse(col.Type)
		if col.Max > 0 {
			desc = desc.Max(col.Max)
		}
	}
	if col.Optional {
		desc = desc.Optional()
	}
	if col.Nullable {
		desc = desc.Nullable()
	}
	if col.Default != nil {
		desc = desc.Default(col.Default)
	}
	if col.DefaultSQL != "" {
		desc = desc.DefaultSQL(col.DefaultSQL)
	}
	return desc
}

// DDL renders CREATE TABLE statements for every table in build order.
func (s *Schema) DDL() emit.Fragment {
	return emit.Sequence(s.Arena.Tables())
}

// Seeds renders the seed inserts of every enum table.
func (s *Schema) Seeds() (emit.Fragment, error) {
	seeds := make([]emit.Fragment, 0, len(s.Enums))
	for _, e := range s.Enums {
		f, err := e.SeedDML()
		if err != nil {
			return nil, fmt.Errorf("enum %s: %w", e.Name(), err)
		}
		seeds = append(seeds, f)
	}
	return emit.Sequence(seeds), nil
}

// CreationOrder returns the tables ordered so that every referenced table
// precedes the tables referencing it. Self references are ignored.
// Mutually referencing tables yield a *dag.CycleError.
func (s *Schema) CreationOrder() ([]*table.Definition, error) {
	g := dag.NewGraph[*table.Definition]()
	tables := s.Arena.Tables()
	for _, def := range tables {
		g.AddNode(def.Name(), def)
	}
	for _, def := range tables {
		for _, col := range def.ForeignKeys() {
			source := col.Reference.Source.TableName()
			if source == def.Name() {
				continue
			}
			if err := g.AddEdge(source, def.Name()); err != nil {
				return nil, fmt.Errorf("table %s: %w", def.Name(), err)
			}
		}
	}

	sorted, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}
	out := make([]*table.Definition, len(sorted))
	for i, n := range sorted {
		out[i] = n.Data
	}
	return out, nil
}

// DropOrder returns the tables in reverse creation order.
func (s *Schema) DropOrder() ([]*table.Definition, error) {
	tables, err := s.CreationOrder()
	if err != nil {
		return nil, err
	}
	slices.Reverse(tables)
	return tables, nil
}

// Statements returns the DDL in creation order and then the seed inserts
// as separate statements, in the order they must be executed.
func (s *Schema) Statements(withSeeds bool) ([]emit.Fragment, error) {
	tables, err := s.CreationOrder()
	if err != nil {
		return nil, err
	}
	out := make([]emit.Fragment, 0, len(tables))
	for _, def := range tables {
		out = append(out, def)
	}
	if !withSeeds {
		return out, nil
	}
	for _, e := range s.Enums {
		stmts, err := e.SeedStatements()
		if err != nil {
			return nil, fmt.Errorf("enum %s: %w", e.Name(), err)
		}
		for _, stmt := range stmts {
			out = append(out, stmt)
		}
	}
	return out, nil
}

// Lint runs the registered rules over every table and returns the
// combined issues.
func (s *Schema) Lint(cfg *lint.Config) *lint.Issues {
	var all lint.Issues
	for _, def := range s.Arena.Tables() {
		all.RegisterLintIssue(def.Lint(cfg)...)
	}
	return &all
}
