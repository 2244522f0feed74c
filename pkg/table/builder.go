package table

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlaide/pkg/domain"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

// Constraint is a table-level constraint fragment.
type Constraint = emit.Fragment

// LintOptions are per-table lint switches.
type LintOptions struct {
	IgnoreMissingPrimaryKey bool
	IgnorePluralName        bool
}

// Options configures a table build.
type Options struct {
	Idempotent bool   // CREATE TABLE IF NOT EXISTS
	Temp       bool   // CREATE TEMP TABLE
	Namespace  string // Schema qualifier, overrides the context namespace

	// Constraints returns extra table constraints, rendered after the
	// derived unique constraints.
	Constraints func(shape Shape, name string) []Constraint

	// SQLPartial is appended after all constraints.
	SQLPartial emit.Fragment

	Lint           LintOptions
	InsertDefaults InsertOptions
}

// Build builds a table definition and registers it in the arena. A failure
// aborts only this table.
func (a *Arena) Build(name string, shape Shape, opts Options) (*Definition, error) {
	if name == "" {
		return nil, ErrEmptyTableName
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.declare(name)
	if a.decls[id-1].def != nil {
		return nil, fmt.Errorf("%w: %s", ErrTableAlreadyBuilt, name)
	}

	seen := make(map[string]struct{}, len(shape))
	for _, spec := range shape {
		if _, dup := seen[spec.Name]; dup {
			return nil, &DuplicateColumnError{Table: name, Column: spec.Name}
		}
		seen[spec.Name] = struct{}{}
	}

	def := &Definition{arena: a, id: id, name: name, shape: shape, opts: opts}

	// Placeholder phase: materialize a domain for every column. Foreign
	// keys copy their source column's descriptor.
	var (
		pending []pendingRef
		links   []link
	)
	columns := make([]*Column, 0, len(shape))
	for _, spec := range shape {
		col := &Column{
			TableName:          name,
			Name:               spec.Name,
			Role:               spec.Role,
			OptionalInInsert:   spec.OptionalInInsert,
			ExcludedFromFilter: spec.ExcludeFromFilter,
		}
		if col.Role == nil {
			col.Role = Plain{}
		}

		var err error
		if fk, ok := col.Role.(ForeignKey); ok {
			var (
				to Endpoint
				p  *pendingRef
			)
			col.Domain, to, p, err = a.materializeReference(id, name, shape, spec, fk.Ref)
			if p != nil {
				pending = append(pending, *p)
			}
			links = append(links, link{col: col, to: to, nature: fk.Ref.nature})
		} else {
			col.Domain, err = a.materializeDomain(spec)
		}
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	// Finalization phase: stamp identities and classify.
	for _, col := range columns {
		if err := col.Domain.Bind(col.Name); err != nil {
			return nil, fmt.Errorf("table %s column %s: %w", name, col.Name, err)
		}
		switch col.Role.(type) {
		case PrimaryKey:
			col.primaryKey = true
		case AutoIncrement:
			col.primaryKey = true
			col.autoIncrement = true
			col.ExcludedFromInsert = true
		case Unique:
			col.unique = true
		}
	}
	def.columns = columns

	// Sources are only touched once nothing can fail.
	for _, l := range links {
		src := a.source(l.to.Table, l.to.Column)
		src.register(Endpoint{Table: id, Column: l.col.Name})
		l.col.Reference = &Reference{Source: src, Nature: l.nature}
	}

	if opts.Constraints != nil {
		def.constraints = opts.Constraints(shape, name)
	}

	a.decls[id-1].def = def
	a.order = append(a.order, id)
	a.pending = append(a.pending, pending...)

	a.logger.Debug("table built",
		slog.String("table", name),
		slog.Int("columns", len(columns)),
		slog.Int("forward_refs", len(pending)))
	return def, nil
}

// link is a foreign key column waiting for its source.
type link struct {
	col    *Column
	to     Endpoint
	nature Nature
}

func (a *Arena) materializeDomain(spec ColumnSpec) (*domain.Domain, error) {
	opts := domain.Options{Identity: spec.Name}
	// A cached domain bound to another column cannot be shared.
	if spec.Domain != nil && spec.Domain.IsBound() && spec.Domain.Identity() != spec.Name {
		opts.ForceCreate = true
	}
	return a.factory.CacheableFrom(spec.Type, spec.Domain, opts)
}

func (a *Arena) materializeReference(id TableID, name string, shape Shape, spec ColumnSpec, ref Placeholder) (*domain.Domain, Endpoint, *pendingRef, error) {
	srcID := ref.table
	if ref.self {
		srcID = id
	}
	foreign := !ref.self && ref.arena != nil && ref.arena != a
	var srcName string
	switch {
	case foreign:
		srcName = ref.arena.Name(srcID)
	case ref.self || ref.arena != nil:
		srcName = a.name(srcID)
	}
	unresolved := func(reason string) error {
		return &UnresolvedReferenceError{
			Table:        name,
			Column:       spec.Name,
			SourceTable:  srcName,
			SourceColumn: ref.column,
			Reason:       reason,
		}
	}
	if foreign {
		return nil, Endpoint{}, nil, unresolved("reference was issued by another arena")
	}
	if srcName == "" {
		return nil, Endpoint{}, nil, unresolved("table was never declared in this arena")
	}

	var (
		desc    domain.Descriptor
		pending *pendingRef
	)
	switch {
	case srcID == id:
		src, ok := shape.Lookup(ref.column)
		if !ok {
			return nil, Endpoint{}, nil, unresolved("no such column")
		}
		if _, isFK := src.Role.(ForeignKey); isFK {
			return nil, Endpoint{}, nil, unresolved("referenced column is itself a foreign key")
		}
		desc = src.Type
	case a.decls[srcID-1].def != nil:
		col, ok := a.decls[srcID-1].def.Column(ref.column)
		if !ok {
			return nil, Endpoint{}, nil, unresolved("no such column")
		}
		desc = col.Domain.Descriptor()
	case ref.hasDesc:
		desc = ref.desc
		pending = &pendingRef{
			from:        Endpoint{Table: id, Column: spec.Name},
			to:          Endpoint{Table: srcID, Column: ref.column},
			desc:        desc,
			fromTable:   name,
			sourceTable: srcName,
		}
	default:
		return nil, Endpoint{}, nil, unresolved("table is not built and the reference carries no type")
	}

	desc = desc.WithoutDefault().Required()
	if ref.optional {
		desc = desc.Optional()
	}
	d, err := a.factory.FromType(desc, domain.Options{Identity: spec.Name})
	if err != nil {
		return nil, Endpoint{}, nil, errors.Join(unresolved("referenced type cannot be mapped"), err)
	}
	return d, Endpoint{Table: srcID, Column: ref.column}, pending, nil
}
