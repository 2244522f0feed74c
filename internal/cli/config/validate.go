package config

import (
	"errors"
	"fmt"

	intconfig "github.com/leapstack-labs/sqlaide/internal/config"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

var outputModes = map[string]bool{"": true, "auto": true, "text": true, "markdown": true, "json": true}

// Validate checks the configuration and reports every problem found.
// The target is only checked when one is configured.
func (c *Config) Validate() error {
	var errs []error
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		errs = append(errs, fmt.Errorf("dialect: %w", err))
	}
	if !outputModes[c.OutputFormat] {
		errs = append(errs, fmt.Errorf("output: unknown format %q (auto|text|markdown|json)", c.OutputFormat))
	}
	if c.VarcharDefaultLength <= 0 {
		errs = append(errs, fmt.Errorf("varchar_default_length must be positive, got %d", c.VarcharDefaultLength))
	}
	if _, err := c.LintRules(); err != nil {
		errs = append(errs, err)
	}
	if c.Target != nil && c.Target.Type != "" {
		if err := intconfig.ValidateTarget(c.Target); err != nil {
			errs = append(errs, fmt.Errorf("invalid target configuration: %w", err))
		}
	}
	return errors.Join(errs...)
}

// RequireTarget returns an error when no database target is configured.
func (c *Config) RequireTarget() error {
	if c.Target == nil || c.Target.Type == "" {
		return fmt.Errorf("no target configured\nHint: add a target section to %s or set SQLAIDE_TARGET__TYPE", intconfig.ConfigFileName)
	}
	return nil
}
