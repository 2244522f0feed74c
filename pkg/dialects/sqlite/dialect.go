// Package sqlite provides the SQLite SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package sqlite

import (
	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

// sqliteReservedWords are keywords SQLite refuses as bare identifiers.
var sqliteReservedWords = []string{
	"abort", "action", "autoincrement", "attach", "collate", "conflict",
	"detach", "exclusive", "glob", "index", "indexed", "limit", "offset",
	"pragma", "raise", "regexp", "reindex", "replace", "transaction",
	"vacuum", "virtual",
}

// SQLite is the embedded SQLite dialect.
var SQLite = dialect.NewDialect("sqlite").
	Presentation("SQLite").
	Family(core.FamilyEmbedded).
	Aliases("sqlite3").
	Identifiers(`"`, `"`, `""`, core.NormCaseInsensitive).
	DefaultSchema("main").
	PlaceholderStyle(core.PlaceholderQuestion).
	BooleanLiterals("0", "1").
	Returning().
	ReservedWords(dialect.StandardReservedWords()...).
	ReservedWords(sqliteReservedWords...).
	Build()
