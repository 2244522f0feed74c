package table

import (
	"sync"

	"github.com/leapstack-labs/sqlaide/pkg/domain"
)

// TableID is the stable arena identifier of a table.
type TableID int

// Nature describes the relationship a foreign key expresses.
type Nature int

const (
	NatureReference Nature = iota
	NatureBelongsTo
	NatureSelfRef
	NatureExtends
	NatureInherits
)

func (n Nature) String() string {
	switch n {
	case NatureReference:
		return "reference"
	case NatureBelongsTo:
		return "belongs-to"
	case NatureSelfRef:
		return "self-reference"
	case NatureExtends:
		return "extends"
	case NatureInherits:
		return "inherits"
	default:
		return "unknown"
	}
}

// Placeholder is a deferred foreign key reference recorded at declaration
// time and resolved when the referencing table is built.
type Placeholder struct {
	arena    *Arena
	table    TableID
	self     bool
	column   string
	nature   Nature
	optional bool
	desc     domain.Descriptor
	hasDesc  bool
}

// SelfRef references a column of the table being built.
func SelfRef(column string) Placeholder {
	return Placeholder{self: true, column: column, nature: NatureSelfRef}
}

// Optional makes the referencing column nullable.
func (p Placeholder) Optional() Placeholder {
	p.optional = true
	return p
}

// As sets the relationship nature.
func (p Placeholder) As(n Nature) Placeholder {
	p.nature = n
	return p
}

func (p Placeholder) Table() TableID { return p.table }
func (p Placeholder) Column() string { return p.column }
func (p Placeholder) Nature() Nature { return p.nature }
func (p Placeholder) IsSelf() bool   { return p.self }

// Endpoint identifies a column by table ID.
type Endpoint struct {
	Table  TableID
	Column string
}

// Source is a referencable (table, column) pair. It is created the first
// time any column references it and records each referencing column once.
type Source struct {
	arena  *Arena
	table  TableID
	column string

	mu       sync.Mutex
	incoming []Endpoint
}

func (s *Source) Table() TableID { return s.table }
func (s *Source) Column() string { return s.column }

// TableName returns the name the source table was declared with.
func (s *Source) TableName() string {
	return s.arena.Name(s.table)
}

// Incoming returns the referencing columns in registration order.
func (s *Source) Incoming() []Endpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Endpoint, len(s.incoming))
	copy(out, s.incoming)
	return out
}

func (s *Source) register(e Endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.incoming {
		if existing == e {
			return
		}
	}
	s.incoming = append(s.incoming, e)
}

// Reference links a foreign key column to its source.
type Reference struct {
	Source *Source
	Nature Nature
}
