package emit

import (
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/lint"
)

// summaryLocationWidth bounds the location shown in lint summary lines.
const summaryLocationWidth = 50

// LintSummary renders the issues of sink as SQL comments. It is a behavior
// and never receives a terminator.
func LintSummary(sink lint.Sink) Fragment {
	return Func(func(ctx *Context) string {
		issues := sink.LintIssues()
		if len(issues) == 0 {
			return "-- no SQL lint issues"
		}
		seen := make(map[string]struct{}, len(issues))
		lines := make([]string, 0, len(issues))
		for _, issue := range issues {
			line := "-- [" + issue.Consequence.String() + "] " + issue.Message
			if loc := issue.Where(summaryLocationWidth); loc != "" {
				line += " (" + loc + ")"
			}
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")
	})
}
