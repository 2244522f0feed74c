// Package adapter provides the database adapter contract used to apply
// rendered DDL and seed DML to a live database.
//
// Concrete adapters live in pkg/adapters/ subdirectories and register
// themselves on import.
package adapter

import (
	"context"
	"database/sql"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Column is an alias for core.Column.
	Column = core.Column

	// Metadata is an alias for core.TableMetadata.
	Metadata = core.TableMetadata

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// GetTableMetadata retrieves metadata for a specified table.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// Dialect returns the SQL dialect that statements for this adapter
	// must be rendered with.
	Dialect() *dialect.Dialect
}

// Batcher is implemented by adapters that can run several statements in
// one transaction.
type Batcher interface {
	ExecBatch(ctx context.Context, statements []string) error
}

// DBProvider is implemented by adapters backed by database/sql. Migration
// runners need the pool itself.
type DBProvider interface {
	SQLDB() *sql.DB
}
