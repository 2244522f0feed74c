// Package duckdb provides the DuckDB SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package duckdb

import (
	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB)
}

// DuckDB is the embedded DuckDB dialect.
var DuckDB = dialect.NewDialect("duckdb").
	Presentation("DuckDB").
	Family(core.FamilyEmbedded).
	Aliases("duck").
	Identifiers(`"`, `"`, `""`, core.NormCaseInsensitive).
	DefaultSchema("main").
	PlaceholderStyle(core.PlaceholderQuestion).
	TypeName(core.DataTypeDateTime, "TIMESTAMP").
	Returning().
	Arrays().
	ReservedWords(dialect.StandardReservedWords()...).
	ReservedWords(duckdbReservedWords...).
	Build()
