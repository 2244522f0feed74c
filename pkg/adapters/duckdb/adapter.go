// Package duckdb provides a DuckDB database adapter.
//
// Import it with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/sqlaide/pkg/adapters/duckdb"
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	duckdbdialect "github.com/leapstack-labs/sqlaide/pkg/dialects/duckdb"
)

func init() {
	adapter.Register(duckdbdialect.DuckDB.Name, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}

// Adapter implements adapter.Adapter for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a DuckDB adapter. A nil logger discards output.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger}}
}

// Dialect returns the DuckDB dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return duckdbdialect.DuckDB
}

// Connect opens the database at cfg.Path (":memory:" when empty), then
// loads configured extensions and applies session settings.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := ParseParams(cfg.Params)
	if err != nil {
		return err
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	a.Logger.Debug("connecting to duckdb", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	for _, stmt := range sessionStatements(params) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to configure duckdb (%s): %w", stmt, err)
		}
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// sessionStatements returns the INSTALL/LOAD and SET statements for p.
// Settings are emitted in key order.
func sessionStatements(p *Params) []string {
	var out []string
	for _, ext := range p.Extensions {
		ident := duckdbdialect.DuckDB.QuoteIdentifierIfNeeded(ext)
		out = append(out, "INSTALL "+ident, "LOAD "+ident)
	}
	keys := make([]string, 0, len(p.Settings))
	for k := range p.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, fmt.Sprintf("SET %s = %s", k, duckdbdialect.DuckDB.QuoteString(p.Settings[k])))
	}
	return out
}

// GetTableMetadata reads column metadata from information_schema.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.GetTableMetadataCommon(ctx, table, duckdbdialect.DuckDB)
}

var _ adapter.Adapter = (*Adapter)(nil)
