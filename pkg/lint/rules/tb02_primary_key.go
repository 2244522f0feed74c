package rules

import (
	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
	"github.com/leapstack-labs/sqlaide/pkg/table"
)

func init() {
	lint.Register(PrimaryKey)
}

// PrimaryKey flags tables without a primary key.
var PrimaryKey = lint.RuleDef{
	ID:          "TB02",
	Name:        "table.primary-key",
	Group:       groupTable,
	Description: "Tables should have at least one primary key column.",
	Consequence: core.WarningDDL,
	New:         bind(checkPrimaryKey),

	Rationale: `Without a primary key rows cannot be addressed individually, foreign
keys have nothing to reference and most replication tools refuse the table.`,

	BadExample:  `CREATE TABLE "event" ("payload" TEXT NOT NULL)`,
	GoodExample: `CREATE TABLE "event" ("event_id" INTEGER PRIMARY KEY AUTOINCREMENT, "payload" TEXT NOT NULL)`,
}

func checkPrimaryKey(def *table.Definition, sink lint.Sink, opts lint.Options) {
	if lint.GetBoolOption(opts, "ignoreMissingPrimaryKey", false) {
		return
	}
	if len(def.PrimaryKeys()) > 0 {
		return
	}
	sink.RegisterLintIssue(lint.Issue{
		Message:     "table '" + def.Name() + "' has no primary key column(s)",
		Consequence: core.WarningDDL,
		Location:    definitionLocation(def),
	})
}
