// Package naming turns logical identifiers into dialect-legal tokens.
package naming

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

// Options controls how a Strategy renders names.
type Options struct {
	Quote     bool   // Quote identifiers with the dialect's quote pair
	Namespace string // Schema qualifier for object names (tables, views, types)
	Normalize bool   // Fold identifiers to the dialect's case rule before rendering
}

// Strategy renders schema object names.
type Strategy interface {
	SchemaName(name string) string
	TableName(name string) string
	ViewName(name string) string
	TypeName(name string) string
	ColumnName(name string) string
	// TableColumnName renders a column, qualified by its table when qualify is set.
	TableColumnName(table, column string, qualify bool) string
}

// New returns a Strategy for the given dialect. A nil dialect uses ANSI.
func New(d *dialect.Dialect, opts Options) Strategy {
	if d == nil {
		d = dialect.Default()
	}
	return &strategy{dialect: d, opts: opts}
}

type strategy struct {
	dialect *dialect.Dialect
	opts    Options
}

func (s *strategy) identifier(name string) string {
	if s.opts.Normalize {
		name = Normalize(s.dialect, name)
	}
	if s.opts.Quote {
		return s.dialect.QuoteIdentifier(name)
	}
	return name
}

func (s *strategy) qualified(name string) string {
	if s.opts.Namespace == "" {
		return s.identifier(name)
	}
	return s.identifier(s.opts.Namespace) + "." + s.identifier(name)
}

func (s *strategy) SchemaName(name string) string { return s.identifier(name) }
func (s *strategy) TableName(name string) string  { return s.qualified(name) }
func (s *strategy) ViewName(name string) string   { return s.qualified(name) }
func (s *strategy) TypeName(name string) string   { return s.qualified(name) }
func (s *strategy) ColumnName(name string) string { return s.identifier(name) }

func (s *strategy) TableColumnName(table, column string, qualify bool) string {
	if !qualify {
		return s.identifier(column)
	}
	return s.qualified(table) + "." + s.identifier(column)
}

// Normalize folds name to the dialect's case rule for unquoted identifiers.
func Normalize(d *dialect.Dialect, name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return cases.Upper(language.Und).String(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return cases.Lower(language.Und).String(name)
	default:
		return name
	}
}
