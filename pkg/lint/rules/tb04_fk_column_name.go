package rules

import (
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
	"github.com/leapstack-labs/sqlaide/pkg/table"
)

func init() {
	lint.Register(FKColumnName)
}

// FKColumnName flags foreign key columns not named <something>_id.
var FKColumnName = lint.RuleDef{
	ID:          "TB04",
	Name:        "table.fk-column-name",
	Group:       groupTable,
	Description: "Foreign key column names should end with a suffix (default _id).",
	Consequence: core.ConventionDDL,
	ConfigKeys:  []string{"suffix"},
	Disabled:    true,
	New:         bind(checkFKColumnName),

	BadExample:  `"owner" INTEGER NOT NULL, FOREIGN KEY("owner") REFERENCES "account"("account_id")`,
	GoodExample: `"owner_id" INTEGER NOT NULL, FOREIGN KEY("owner_id") REFERENCES "account"("account_id")`,
}

func checkFKColumnName(def *table.Definition, sink lint.Sink, opts lint.Options) {
	suffix := lint.GetStringOption(opts, "suffix", "_id")
	for _, col := range def.ForeignKeys() {
		if strings.HasSuffix(col.Name, suffix) {
			continue
		}
		sink.RegisterLintIssue(lint.Issue{
			Message:     "foreign key column '" + col.Name + "' of table '" + def.Name() + "' should end with '" + suffix + "'",
			Consequence: core.ConventionDDL,
			Location:    definitionLocation(def),
		})
	}
}
