package dialect

import "github.com/leapstack-labs/sqlaide/pkg/core"

// ANSI is the generic ANSI SQL dialect.
// This is registered automatically when the package is loaded.
var ANSI = NewDialect("ansi").
	Presentation("ANSI").
	Family(core.FamilyANSI).
	Identifiers(`"`, `"`, `""`, core.NormUppercase).
	ReservedWords(standardReservedWords...).
	Build()

// standardReservedWords are SQL:2016 reserved words that collide with
// common column names.
var standardReservedWords = []string{
	"ALL", "AND", "ANY", "AS", "ASC", "BETWEEN", "BY", "CASE", "CHECK",
	"COLUMN", "CONSTRAINT", "CREATE", "CROSS", "CURRENT", "DEFAULT",
	"DELETE", "DESC", "DISTINCT", "DROP", "ELSE", "END", "EXISTS",
	"FALSE", "FOR", "FOREIGN", "FROM", "FULL", "GROUP", "HAVING", "IN",
	"INNER", "INSERT", "INTO", "IS", "JOIN", "KEY", "LEFT", "LIKE",
	"NOT", "NULL", "ON", "OR", "ORDER", "OUTER", "PRIMARY", "REFERENCES",
	"RIGHT", "SELECT", "SET", "TABLE", "THEN", "TO", "TRUE", "UNION",
	"UNIQUE", "UPDATE", "USER", "USING", "VALUES", "WHEN", "WHERE", "WITH",
}

// StandardReservedWords returns a copy of the SQL standard reserved words.
func StandardReservedWords() []string {
	out := make([]string, len(standardReservedWords))
	copy(out, standardReservedWords)
	return out
}

func init() {
	Register(ANSI)
}
