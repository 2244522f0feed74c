package lint

import (
	"fmt"

	"github.com/leapstack-labs/sqlaide/pkg/core"
)

// Rule inspects a target and registers issues on sink.
type Rule interface {
	Lint(sink Sink, opts Options)
}

// RuleFunc adapts a function to Rule.
type RuleFunc func(sink Sink, opts Options)

// Lint calls f.
func (f RuleFunc) Lint(sink Sink, opts Options) {
	f(sink, opts)
}

// Aggregate returns a Rule that runs rules in order against one sink.
// A rule that panics is reported as a fatal issue and the remaining rules
// still run.
func Aggregate(rules ...Rule) Rule {
	return RuleFunc(func(sink Sink, opts Options) {
		for _, r := range rules {
			if r == nil {
				continue
			}
			runRule(r, sink, opts)
		}
	})
}

func runRule(r Rule, sink Sink, opts Options) {
	defer func() {
		if p := recover(); p != nil {
			sink.RegisterLintIssue(Issue{
				Message:     fmt.Sprintf("lint rule %T failed: %v", r, p),
				Consequence: core.FatalDDL,
			})
		}
	}()
	r.Lint(sink, opts)
}
