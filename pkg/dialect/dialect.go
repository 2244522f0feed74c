// Package dialect provides SQL dialect facts consumed by every rendering
// component: identifier quoting, literal escaping, type-name overrides and
// auto-increment decoration.
//
// Concrete dialects are registered from pkg/dialects/*/ packages. The ANSI
// dialect is built in and is the default when none is requested.
package dialect

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/core"
)

// IdentityPurpose selects which name a dialect reports for itself.
type IdentityPurpose int

const (
	// IdentityPresentation is the human readable product name ("PostgreSQL").
	IdentityPresentation IdentityPurpose = iota
	// IdentityState is the registry key ("postgres").
	IdentityState
)

// AutoIncrement describes how a dialect renders an auto-increment primary key.
type AutoIncrement struct {
	TypeName   string // Replaces the column type when set (e.g. SERIAL)
	Decoration string // Rendered after the type (e.g. PRIMARY KEY AUTOINCREMENT)
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name         string
	Presentation string
	Family       core.DialectFamily
	Identifiers  core.IdentifierConfig

	// Database-specific settings
	DefaultSchema string                // Default schema name ("main" for DuckDB, "public" for Postgres)
	Placeholder   core.PlaceholderStyle // How to format query parameters

	aliases         []string
	typeNames       map[core.DataType]string
	autoIncrement   AutoIncrement
	boolLiterals    [2]string // false, true
	escapeBackslash bool
	terminator      string
	batchSeparator  string
	returning       bool
	arrays          bool
	reservedWords   map[string]struct{}
}

// Identity returns the dialect's name for the given purpose.
func (d *Dialect) Identity(purpose IdentityPurpose) string {
	if purpose == IdentityPresentation && d.Presentation != "" {
		return d.Presentation
	}
	return d.Name
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// Aliases returns the alternative registry names of the dialect.
func (d *Dialect) Aliases() []string {
	return d.aliases
}

// IsEnterprise reports whether the dialect belongs to the enterprise family.
func (d *Dialect) IsEnterprise() bool {
	return d.Family == core.FamilyEnterprise
}

// IsClientServer reports whether the dialect belongs to the client/server family.
func (d *Dialect) IsClientServer() bool {
	return d.Family == core.FamilyClientServer
}

// TypeName returns the dialect override for an abstract type, if any.
func (d *Dialect) TypeName(t core.DataType) (string, bool) {
	name, ok := d.typeNames[t]
	return name, ok
}

// AutoIncrement returns the auto-increment rendering rule.
func (d *Dialect) AutoIncrement() AutoIncrement {
	return d.autoIncrement
}

// Terminator returns the statement terminator.
func (d *Dialect) Terminator() string {
	return d.terminator
}

// BatchSeparator returns the batch separator line, empty if unsupported.
func (d *Dialect) BatchSeparator() string {
	return d.batchSeparator
}

// SupportsReturning reports whether INSERT ... RETURNING is accepted.
func (d *Dialect) SupportsReturning() bool {
	return d.returning
}

// SupportsArrays reports whether the dialect has native array column types.
func (d *Dialect) SupportsArrays() bool {
	return d.arrays
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case core.PlaceholderAtP:
		return "@p" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToUpper(word)]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only if it's a reserved word
// or is not a plain identifier.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) || !isPlainIdentifier(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

func isPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
// Defaults are ANSI: double-quote identifiers, `;` terminator,
// TRUE/FALSE booleans and PRIMARY KEY AUTOINCREMENT.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name:   name,
			Family: core.FamilyANSI,
			Identifiers: core.IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: core.NormLowercase,
			},
			typeNames:     make(map[core.DataType]string),
			autoIncrement: AutoIncrement{Decoration: "PRIMARY KEY AUTOINCREMENT"},
			boolLiterals:  [2]string{"FALSE", "TRUE"},
			terminator:    ";",
			reservedWords: make(map[string]struct{}),
		},
	}
}

// Presentation sets the human readable product name.
func (b *Builder) Presentation(name string) *Builder {
	b.dialect.Presentation = name
	return b
}

// Family sets the dialect family.
func (b *Builder) Family(f core.DialectFamily) *Builder {
	b.dialect.Family = f
	return b
}

// Aliases adds alternative registry names.
func (b *Builder) Aliases(names ...string) *Builder {
	b.dialect.aliases = append(b.dialect.aliases, names...)
	return b
}

// Identifiers sets the identifier quoting configuration.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets the query parameter style.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// TypeName overrides the SQL type name rendered for an abstract type.
func (b *Builder) TypeName(t core.DataType, name string) *Builder {
	b.dialect.typeNames[t] = name
	return b
}

// AutoIncrement sets how auto-increment primary keys are rendered.
func (b *Builder) AutoIncrement(typeName, decoration string) *Builder {
	b.dialect.autoIncrement = AutoIncrement{TypeName: typeName, Decoration: decoration}
	return b
}

// BooleanLiterals sets the text rendered for false and true.
func (b *Builder) BooleanLiterals(falseText, trueText string) *Builder {
	b.dialect.boolLiterals = [2]string{falseText, trueText}
	return b
}

// BackslashEscapes makes string literals escape backslashes as well as quotes.
func (b *Builder) BackslashEscapes() *Builder {
	b.dialect.escapeBackslash = true
	return b
}

// BatchSeparator sets the batch separator line (e.g. GO).
func (b *Builder) BatchSeparator(sep string) *Builder {
	b.dialect.batchSeparator = sep
	return b
}

// Returning marks INSERT ... RETURNING as supported.
func (b *Builder) Returning() *Builder {
	b.dialect.returning = true
	return b
}

// Arrays marks native array column types as supported.
func (b *Builder) Arrays() *Builder {
	b.dialect.arrays = true
	return b
}

// ReservedWords adds words that must be quoted when used as identifiers.
func (b *Builder) ReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
