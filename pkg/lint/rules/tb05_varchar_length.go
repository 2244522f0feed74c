package rules

import (
	"strconv"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
	"github.com/leapstack-labs/sqlaide/pkg/table"
)

func init() {
	lint.Register(VarcharLength)
}

// VarcharLength reports VARCHAR columns relying on the default length, and
// declared lengths above the configured maximum.
var VarcharLength = lint.RuleDef{
	ID:          "TB05",
	Name:        "table.varchar-length",
	Group:       groupTable,
	Description: "VARCHAR columns should declare a maximum length.",
	Consequence: core.InformationalDDL,
	ConfigKeys:  []string{"length"},
	New:         bind(checkVarcharLength),

	Rationale: `An undeclared length falls back to a tool default that differs between
dialects. Declaring it keeps the schema identical everywhere.`,
}

func checkVarcharLength(def *table.Definition, sink lint.Sink, opts lint.Options) {
	limit := lint.GetIntOption(opts, "length", 0)
	for _, col := range def.Columns() {
		if col.Domain.Kind() != core.DataTypeVarChar {
			continue
		}
		n, declared := col.Domain.VarcharLength()
		var message string
		switch {
		case !declared:
			message = "column '" + col.Name + "' has no declared VARCHAR length, defaulting to " + strconv.Itoa(n)
		case limit > 0 && n > limit:
			message = "column '" + col.Name + "' VARCHAR length " + strconv.Itoa(n) + " exceeds " + strconv.Itoa(limit)
		default:
			continue
		}
		sink.RegisterLintIssue(lint.Issue{
			Message:     message,
			Consequence: core.InformationalDDL,
			Location:    definitionLocation(def),
		})
	}
}
