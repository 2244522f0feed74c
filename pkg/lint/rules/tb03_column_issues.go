package rules

import (
	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
	"github.com/leapstack-labs/sqlaide/pkg/table"
)

func init() {
	lint.Register(ColumnIssues)
}

// ColumnIssues re-registers the issues recorded on column domains against
// the table.
var ColumnIssues = lint.RuleDef{
	ID:          "TB03",
	Name:        "table.column-issues",
	Group:       groupTable,
	Description: "Issues found while compiling column domains are reported on their table.",
	Consequence: core.WarningDDL,
	New:         bind(checkColumnIssues),
}

// Domain issues keep their own consequence unless TB03's consequence is
// overridden in the lint config, which then applies to every propagated
// issue. Issues without a consequence take the rule default.
func checkColumnIssues(def *table.Definition, sink lint.Sink, _ lint.Options) {
	loc := definitionLocation(def)
	for _, col := range def.Columns() {
		for _, issue := range col.Domain.LintIssues() {
			if issue.Consequence == core.ConsequenceNone {
				issue.Consequence = core.WarningDDL
			}
			sink.RegisterLintIssue(lint.Issue{
				Message:     "column " + col.Name + ": " + issue.Message,
				Consequence: issue.Consequence,
				Location:    loc,
			})
		}
	}
}
