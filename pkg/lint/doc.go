// Package lint provides the structural lint framework for table definitions.
//
// # Architecture
//
// Lint targets (table definitions, domains) are issue sinks: they carry an
// append-only list of Issue values. Rules inspect a target and register
// issues on a sink. Issues are advisory and never block rendering.
//
// # Rule Registration
//
// Rules are registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/sqlaide/pkg/lint/rules"
//
// Each RuleDef carries a New function that returns a Rule bound to a target,
// or nil when the target is not something the rule inspects.
//
// # Configuration
//
// Use Config to control which rules run and their consequence:
//
//	config := lint.NewConfig()
//	config.Disable("TB01")
//	config.SetConsequence("TB02", core.FatalDDL)
//	config.SetRuleOptions("TB01", lint.Options{"strategy": "inflect"})
//
// Analyzer applies the configuration to every registered rule:
//
//	lint.NewAnalyzer(config).Analyze(def, def)
package lint
