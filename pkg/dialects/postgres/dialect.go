// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies,
// making it suitable for rendering DDL without a database connection.
package postgres

import (
	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// postgresReservedWords contains common PostgreSQL reserved words.
// This is a manually maintained list of frequently problematic identifiers.
var postgresReservedWords = []string{
	"analyse", "analyze", "array", "asymmetric", "authorization", "binary",
	"both", "cast", "collate", "current_catalog", "current_role",
	"current_schema", "current_user", "deferrable", "do", "except", "fetch",
	"freeze", "grant", "ilike", "initially", "intersect", "isnull",
	"lateral", "leading", "limit", "localtime", "localtimestamp", "natural",
	"notnull", "offset", "only", "overlaps", "placing", "returning",
	"session_user", "similar", "some", "symmetric", "trailing", "variadic",
	"verbose", "window",
}

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.NewDialect("postgres").
	Presentation("PostgreSQL").
	Family(core.FamilyClientServer).
	Aliases("postgresql", "pg", "pgx").
	Identifiers(`"`, `"`, `""`, core.NormLowercase).
	DefaultSchema("public").
	PlaceholderStyle(core.PlaceholderDollar).
	TypeName(core.DataTypeJSON, "JSONB").
	TypeName(core.DataTypeDateTime, "TIMESTAMP").
	AutoIncrement("SERIAL", "PRIMARY KEY").
	Returning().
	Arrays().
	ReservedWords(dialect.StandardReservedWords()...).
	ReservedWords(postgresReservedWords...).
	Build()
