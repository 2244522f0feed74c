package core

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // sqlite, duckdb, postgres, mysql, mssql

	// File-based databases (SQLite, DuckDB)
	Database string `koanf:"database"` // file path or database name

	// DSN overrides the individual network fields when set
	DSN string `koanf:"dsn"`

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Common
	Schema string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Params holds adapter-specific settings (e.g. DuckDB extensions)
	Params map[string]any `koanf:"params"`
}

// LintConfig holds lint rule configuration.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Enabled contains rule IDs to enable when they are off by default
	Enabled []string `koanf:"enabled"`

	// Consequence maps rule ID to a consequence override (e.g. warning_ddl)
	Consequence map[string]string `koanf:"consequence"`

	// Rules contains rule-specific options
	Rules map[string]RuleOptions `koanf:"rules"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any
