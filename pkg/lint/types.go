package lint

import "github.com/leapstack-labs/sqlaide/pkg/core"

// RuleDef is a registered rule definition.
// New binds the rule to a lint target; it returns nil when the target is
// not something the rule inspects.
type RuleDef struct {
	ID          string           // Unique identifier, e.g., "TB01"
	Name        string           // Human-readable name, e.g., "table.name-singular"
	Group       string           // Category, e.g., "table"
	Description string           // Human-readable description
	Consequence core.Consequence // Default consequence
	New         func(target any) Rule
	ConfigKeys  []string // Configuration keys this rule accepts
	Disabled    bool     // Disabled unless explicitly enabled

	// Documentation fields for richer rule documentation
	Rationale   string
	BadExample  string
	GoodExample string
}

// Info returns metadata about the rule for documentation and tooling.
func (d RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:          d.ID,
		Name:        d.Name,
		Group:       d.Group,
		Description: d.Description,
		Consequence: d.Consequence,
		Severity:    d.Consequence.Severity(),
		ConfigKeys:  d.ConfigKeys,
		Disabled:    d.Disabled,
		Rationale:   d.Rationale,
		BadExample:  d.BadExample,
		GoodExample: d.GoodExample,
	}
}
