// Package sqlite provides a SQLite database adapter backed by the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	sqlitedialect "github.com/leapstack-labs/sqlaide/pkg/dialects/sqlite"
)

func init() {
	adapter.Register(sqlitedialect.SQLite.Name, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}

// Adapter implements adapter.Adapter for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a SQLite adapter. A nil logger discards output.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger}}
}

// Dialect returns the SQLite dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return sqlitedialect.SQLite
}

// Connect opens cfg.Path, or cfg.DSN when set. An empty path is an
// in-memory database. Foreign keys are enforced on every connection.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = cfg.Path
	}
	if dsn == "" {
		dsn = ":memory:"
	}
	a.Logger.Debug("connecting to sqlite", slog.String("dsn", dsn))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite connection: %w", err)
	}
	// Each in-memory connection is its own database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// GetTableMetadata reads column metadata with PRAGMA table_info, since
// SQLite has no information_schema.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	d := sqlitedialect.SQLite
	schema, name := adapter.ParseQualifiedName(table, d)
	qualified := d.QuoteIdentifier(schema) + "." + d.QuoteIdentifier(name)

	rows, err := a.DB.QueryContext(ctx, "PRAGMA "+d.QuoteIdentifier(schema)+".table_info("+d.QuoteString(name)+")")
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []adapter.Column
	for rows.Next() {
		var (
			cid      int
			col      adapter.Column
			notNull  int
			defValue sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &defValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Position = cid + 1
		col.Nullable = notNull == 0 && pk == 0
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}

	var rowCount int64
	if err := a.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+qualified).Scan(&rowCount); err != nil {
		rowCount = 0
	}

	return &adapter.Metadata{
		Schema:   schema,
		Name:     name,
		Columns:  columns,
		RowCount: rowCount,
	}, nil
}

var _ adapter.Adapter = (*Adapter)(nil)
