package core

import (
	"database/sql"
)

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string // file path for embedded databases
	DSN      string // driver DSN; overrides the fields below when set
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string

	// Params holds adapter-specific settings decoded by each adapter.
	Params map[string]any
}

// Column represents a column in a database table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Position int
}

// TableMetadata holds metadata about a database table.
type TableMetadata struct {
	Schema   string
	Name     string
	Columns  []Column
	RowCount int64
}

// Rows wraps sql.Rows to provide a consistent interface.
type Rows struct {
	*sql.Rows
}
