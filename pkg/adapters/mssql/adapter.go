// Package mssql provides a Microsoft SQL Server database adapter.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	mssqldriver "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	mssqldialect "github.com/leapstack-labs/sqlaide/pkg/dialects/mssql"
)

func init() {
	adapter.Register(mssqldialect.MSSQL.Name, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}

// Adapter implements adapter.Adapter for SQL Server.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a SQL Server adapter. A nil logger discards output.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger}}
}

// Dialect returns the SQL Server dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return mssqldialect.MSSQL
}

// Connect establishes a connection to SQL Server. The DSN is parsed
// before opening so malformed strings fail fast.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := buildMSSQLDSN(cfg)
	parsed, err := msdsn.Parse(dsn)
	if err != nil {
		return fmt.Errorf("invalid mssql dsn: %w", err)
	}
	a.Logger.Debug("connecting to mssql",
		slog.String("host", parsed.Host),
		slog.String("database", parsed.Database))

	connector, err := mssqldriver.NewConnector(dsn)
	if err != nil {
		return fmt.Errorf("failed to create mssql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping mssql: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildMSSQLDSN returns cfg.DSN when set, otherwise a sqlserver:// URL.
func buildMSSQLDSN(cfg adapter.Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 1433
	}

	query := url.Values{}
	if cfg.Database != "" {
		query.Set("database", cfg.Database)
	}
	for k, v := range cfg.Options {
		query.Set(k, v)
	}
	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     host + ":" + strconv.Itoa(port),
		RawQuery: query.Encode(),
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	return u.String()
}

// GetTableMetadata reads column metadata from information_schema. An
// unqualified table uses cfg.Schema, or dbo.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	d := mssqldialect.MSSQL
	if a.Cfg.Schema != "" {
		if schema, name := adapter.ParseQualifiedName(table, d); schema == d.DefaultSchema && name == table {
			table = a.Cfg.Schema + "." + name
		}
	}
	return a.GetTableMetadataCommon(ctx, table, d)
}

var _ adapter.Adapter = (*Adapter)(nil)
