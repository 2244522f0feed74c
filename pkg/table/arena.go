package table

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/sqlaide/pkg/domain"
)

type sourceKey struct {
	table  TableID
	column string
}

type decl struct {
	name string
	def  *Definition
}

// pendingRef is a reference to a table that was not built when the
// referencing table was.
type pendingRef struct {
	from        Endpoint
	to          Endpoint
	desc        domain.Descriptor
	fromTable   string
	sourceTable string
}

// Arena assigns stable IDs to tables and resolves references between them.
// It is safe for concurrent use.
type Arena struct {
	mu      sync.RWMutex
	factory *domain.Factory
	logger  *slog.Logger

	ids     map[string]TableID
	decls   []decl // index is TableID-1
	order   []TableID
	sources map[sourceKey]*Source
	pending []pendingRef
}

// ArenaOption configures an Arena.
type ArenaOption func(*Arena)

// WithFactory sets the domain factory used for plain columns.
func WithFactory(f *domain.Factory) ArenaOption {
	return func(a *Arena) {
		if f != nil {
			a.factory = f
		}
	}
}

// WithLogger sets the arena logger.
func WithLogger(logger *slog.Logger) ArenaOption {
	return func(a *Arena) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewArena creates an empty arena.
func NewArena(opts ...ArenaOption) *Arena {
	a := &Arena{
		factory: domain.NewFactory(),
		logger:  slog.New(slog.DiscardHandler),
		ids:     make(map[string]TableID),
		sources: make(map[sourceKey]*Source),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Declare returns the ID for name, minting one if the table has not been
// mentioned before.
func (a *Arena) Declare(name string) TableID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.declare(name)
}

func (a *Arena) declare(name string) TableID {
	if id, ok := a.ids[name]; ok {
		return id
	}
	a.decls = append(a.decls, decl{name: name})
	id := TableID(len(a.decls))
	a.ids[name] = id
	return id
}

// Name returns the declared name of a table ID.
func (a *Arena) Name(id TableID) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.name(id)
}

func (a *Arena) name(id TableID) string {
	if id < 1 || int(id) > len(a.decls) {
		return ""
	}
	return a.decls[id-1].name
}

// Definition returns the built definition for id.
func (a *Arena) Definition(id TableID) (*Definition, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if id < 1 || int(id) > len(a.decls) {
		return nil, false
	}
	def := a.decls[id-1].def
	return def, def != nil
}

// Lookup returns the built definition for a table name.
func (a *Arena) Lookup(name string) (*Definition, bool) {
	a.mu.RLock()
	id, ok := a.ids[name]
	a.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return a.Definition(id)
}

// Tables returns the built definitions in build order.
func (a *Arena) Tables() []*Definition {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*Definition, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.decls[id-1].def)
	}
	return out
}

// ForwardRef references a column of a table that may not be built yet.
// desc is the type the referenced column is expected to have.
func (a *Arena) ForwardRef(id TableID, column string, desc domain.Descriptor) Placeholder {
	return Placeholder{arena: a, table: id, column: column, desc: desc, hasDesc: true}
}

// Source returns the reference source for (id, column), creating it on
// first use.
func (a *Arena) Source(id TableID, column string) *Source {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.source(id, column)
}

func (a *Arena) source(id TableID, column string) *Source {
	key := sourceKey{table: id, column: column}
	if s, ok := a.sources[key]; ok {
		return s
	}
	s := &Source{arena: a, table: id, column: column}
	a.sources[key] = s
	return s
}

// Resolve verifies every reference recorded against a table that was not
// built at the time. It returns one *UnresolvedReferenceError per defect,
// joined.
func (a *Arena) Resolve() error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var errs []error
	for _, p := range a.pending {
		def := a.decls[p.to.Table-1].def
		unresolved := func(reason string) {
			errs = append(errs, &UnresolvedReferenceError{
				Table:        p.fromTable,
				Column:       p.from.Column,
				SourceTable:  p.sourceTable,
				SourceColumn: p.to.Column,
				Reason:       reason,
			})
		}
		if def == nil {
			unresolved("table was declared but never built")
			continue
		}
		col, ok := def.Column(p.to.Column)
		if !ok {
			unresolved("no such column")
			continue
		}
		if col.Domain.Kind() != p.desc.Kind() {
			unresolved("referenced column is " + col.Domain.Kind().String() + ", reference expects " + p.desc.Kind().String())
		}
	}
	return errors.Join(errs...)
}
