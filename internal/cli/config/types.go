// Package config provides configuration management for the sqlaide CLI.
//
// The shared target and lint types are defined in pkg/core and re-exported
// here via type aliases.
package config

import (
	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
)

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = core.TargetConfig

// LintConfig is an alias for the shared lint configuration.
type LintConfig = core.LintConfig

// Config holds all CLI configuration options.
type Config struct {
	Dialect              string        `koanf:"dialect"`
	Namespace            string        `koanf:"namespace"`
	Idempotent           bool          `koanf:"idempotent"`
	Unquoted             bool          `koanf:"unquoted"`
	VarcharDefaultLength int           `koanf:"varchar_default_length"`
	SchemaFile           string        `koanf:"schema"`
	MigrationsDir        string        `koanf:"migrations_dir"`
	Verbose              bool          `koanf:"verbose"`
	OutputFormat         string        `koanf:"output"`
	Target               *TargetConfig `koanf:"target"`
	Lint                 *LintConfig   `koanf:"lint"`

	// ProjectRoot is the directory relative paths resolve against.
	ProjectRoot string `koanf:"-"`
}

// LintRules converts the lint section into a rule configuration.
func (c *Config) LintRules() (*lint.Config, error) {
	if c.Lint == nil {
		return lint.NewConfig(), nil
	}
	return lint.ConfigFromProject(*c.Lint)
}
