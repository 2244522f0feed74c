// Package mysql provides the MySQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package mysql

import (
	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

var mysqlReservedWords = []string{
	"accessible", "change", "database", "databases", "div", "dual",
	"explain", "high_priority", "ignore", "index", "interval", "keys",
	"kill", "limit", "lines", "load", "lock", "long", "match", "mod",
	"optimize", "option", "range", "read", "regexp", "rename", "replace",
	"require", "schema", "show", "sql", "ssl", "status", "unsigned",
	"usage", "write", "xor", "zerofill",
}

// MySQL is the MySQL dialect. Identifiers are backtick quoted and string
// literals escape backslashes.
var MySQL = dialect.NewDialect("mysql").
	Presentation("MySQL").
	Family(core.FamilyClientServer).
	Aliases("mariadb").
	Identifiers("`", "`", "``", core.NormCaseSensitive).
	PlaceholderStyle(core.PlaceholderQuestion).
	AutoIncrement("", "PRIMARY KEY AUTO_INCREMENT").
	BackslashEscapes().
	ReservedWords(dialect.StandardReservedWords()...).
	ReservedWords(mysqlReservedWords...).
	Build()
