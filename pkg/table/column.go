package table

import (
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/domain"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

// Column is a domain bound to a table column.
type Column struct {
	Domain    *domain.Domain
	TableName string
	Name      string
	Role      Role

	// Reference is set for foreign key columns.
	Reference *Reference

	ExcludedFromInsert bool
	OptionalInInsert   bool
	ExcludedFromFilter bool

	primaryKey    bool
	autoIncrement bool
	unique        bool
}

func (c *Column) IsPrimaryKey() bool    { return c.primaryKey }
func (c *Column) IsAutoIncrement() bool { return c.autoIncrement }
func (c *Column) IsUnique() bool        { return c.unique }
func (c *Column) IsForeignKey() bool    { return c.Reference != nil }

// TypeSQL renders the column type. Auto-increment keys use the dialect's
// replacement type when it has one.
func (c *Column) TypeSQL(ctx *emit.Context) string {
	if c.autoIncrement {
		if t := ctx.Dialect.AutoIncrement().TypeName; t != "" {
			return t
		}
	}
	return c.Domain.SQLDataType(ctx)
}

// Decorations returns the keywords rendered after the column type.
func (c *Column) Decorations(ctx *emit.Context) []string {
	switch {
	case c.autoIncrement:
		return []string{ctx.Dialect.AutoIncrement().Decoration}
	case c.primaryKey:
		return []string{"PRIMARY KEY"}
	default:
		return nil
	}
}

// SQL renders the column definition:
// <name> <type> [decorations] [NOT NULL] [DEFAULT <value>].
// NOT NULL is only rendered for undecorated, non-nullable columns.
func (c *Column) SQL(ctx *emit.Context) string {
	var b strings.Builder
	b.WriteString(ctx.NamingStrategy().ColumnName(c.Domain.Identity()))
	b.WriteByte(' ')
	b.WriteString(c.TypeSQL(ctx))

	decorations := c.Decorations(ctx)
	for _, d := range decorations {
		b.WriteByte(' ')
		b.WriteString(d)
	}
	if len(decorations) == 0 && !c.Domain.IsNullable() {
		b.WriteString(" NOT NULL")
	}
	if def, ok := c.Domain.SQLDefaultValue(ctx); ok {
		b.WriteString(" DEFAULT ")
		b.WriteString(def)
	}
	return b.String()
}
