// Package config holds project configuration helpers shared by the CLI
// and library callers: config file discovery and database target
// defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

// Default configuration values.
const (
	DefaultDialect       = "ansi"
	DefaultSchemaFile    = "schema.yaml"
	DefaultMigrationsDir = "migrations"
	DefaultVarcharLength = 255
)

var defaultPorts = map[string]int{
	"postgres": 5432,
	"mysql":    3306,
	"mssql":    1433,
}

// DefaultSchemaForType returns the default schema of a target type's
// dialect, or "" when the dialect has none.
func DefaultSchemaForType(dbType string) string {
	if d, ok := dialect.Get(dbType); ok {
		return d.DefaultSchema
	}
	return ""
}

// ApplyTargetDefaults fills the schema and port for the target's type.
// Aliases resolve, so "pg" gets the postgres defaults.
func ApplyTargetDefaults(t *core.TargetConfig) {
	if t == nil || t.Type == "" {
		return
	}
	name := strings.ToLower(t.Type)
	if d, ok := dialect.Get(name); ok {
		name = d.Name
	}
	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(name)
	}
	if t.Port == 0 && t.DSN == "" {
		t.Port = defaultPorts[name]
	}
}

// ValidateTarget checks that the target names a registered adapter.
func ValidateTarget(t *core.TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(t.Type) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}
	return nil
}

// AdapterConfig converts a target into the adapter connection config.
// File databases use Database as their path.
func AdapterConfig(t *core.TargetConfig) adapter.Config {
	return adapter.Config{
		Type:     t.Type,
		Path:     t.Database,
		DSN:      t.DSN,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
		Params:   t.Params,
	}
}
