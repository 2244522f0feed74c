package lint

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlaide/pkg/core"
)

// Config controls which rules run, their consequence and their options.
// Rule keys may be a rule ID ("TB01") or a rule name ("table.name-singular").
type Config struct {
	// DisabledRules contains rules to skip
	DisabledRules map[string]bool

	// EnabledRules turns on rules that are disabled by default
	EnabledRules map[string]bool

	// ConsequenceOverrides changes the default consequence of rules
	ConsequenceOverrides map[string]core.Consequence

	// RuleOptions holds rule-specific options
	RuleOptions map[string]Options
}

// NewConfig creates a default configuration.
func NewConfig() *Config {
	return &Config{
		DisabledRules:        make(map[string]bool),
		EnabledRules:         make(map[string]bool),
		ConsequenceOverrides: make(map[string]core.Consequence),
		RuleOptions:          make(map[string]Options),
	}
}

// ConfigFromProject converts the lint section of the project configuration.
// Unknown consequence names are reported together.
func ConfigFromProject(lc core.LintConfig) (*Config, error) {
	cfg := NewConfig()
	for _, id := range lc.Disabled {
		cfg.Disable(id)
	}
	for _, id := range lc.Enabled {
		cfg.Enable(id)
	}

	var errs []error
	for id, name := range lc.Consequence {
		c, err := core.ParseConsequence(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("lint rule %s: %w", id, err))
			continue
		}
		cfg.SetConsequence(id, c)
	}
	for id, opts := range lc.Rules {
		cfg.SetRuleOptions(id, Options(opts))
	}
	return cfg, errors.Join(errs...)
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(def RuleDef) bool {
	if c == nil {
		return def.Disabled
	}
	if c.DisabledRules[def.ID] || c.DisabledRules[def.Name] {
		return true
	}
	if def.Disabled {
		return !c.EnabledRules[def.ID] && !c.EnabledRules[def.Name]
	}
	return false
}

// GetConsequence returns the consequence for a rule, applying any override.
func (c *Config) GetConsequence(def RuleDef, defaultConsequence core.Consequence) core.Consequence {
	if c != nil {
		if v, ok := c.ConsequenceOverrides[def.ID]; ok {
			return v
		}
		if v, ok := c.ConsequenceOverrides[def.Name]; ok {
			return v
		}
	}
	return defaultConsequence
}

// GetRuleOptions returns the options configured for a rule.
func (c *Config) GetRuleOptions(def RuleDef) Options {
	if c == nil {
		return nil
	}
	if opts, ok := c.RuleOptions[def.ID]; ok {
		return opts
	}
	return c.RuleOptions[def.Name]
}

// Disable disables a rule.
func (c *Config) Disable(rule string) *Config {
	c.DisabledRules[rule] = true
	return c
}

// Enable enables a rule that is disabled by default.
func (c *Config) Enable(rule string) *Config {
	c.EnabledRules[rule] = true
	return c
}

// SetConsequence overrides the consequence for a rule.
func (c *Config) SetConsequence(rule string, consequence core.Consequence) *Config {
	c.ConsequenceOverrides[rule] = consequence
	return c
}

// SetRuleOptions sets rule-specific options.
func (c *Config) SetRuleOptions(rule string, opts Options) *Config {
	c.RuleOptions[rule] = opts
	return c
}
