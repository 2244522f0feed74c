// Package rules contains the lint rules for compiled table definitions.
//
// Rules are registered via init() functions when this package is imported:
//
//	import _ "github.com/leapstack-labs/sqlaide/pkg/lint/rules"
//
// Rule catalogue:
//   - TB01: Name Singular - Table names should be singular
//   - TB02: Primary Key - Tables should have a primary key
//   - TB03: Column Issues - Column domain issues surface on the table
//   - TB04: FK Column Name - Foreign key columns should end with _id (opt-in)
//   - TB05: Varchar Length - VARCHAR columns should declare a length
package rules

import (
	"github.com/leapstack-labs/sqlaide/pkg/lint"
	"github.com/leapstack-labs/sqlaide/pkg/table"
)

const groupTable = "table"

// bind adapts a check over a table definition to lint.RuleDef.New.
func bind(check func(def *table.Definition, sink lint.Sink, opts lint.Options)) func(target any) lint.Rule {
	return func(target any) lint.Rule {
		def, ok := target.(*table.Definition)
		if !ok {
			return nil
		}
		return lint.RuleFunc(func(sink lint.Sink, opts lint.Options) {
			check(def, sink, opts)
		})
	}
}

// definitionLocation is the location attached to table-level issues.
func definitionLocation(def *table.Definition) func(maxLen int) string {
	return lint.At("table " + def.Name() + " definition")
}
