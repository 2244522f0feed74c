// Package postgres provides a PostgreSQL database adapter using the pgx
// database/sql driver.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	pgdialect "github.com/leapstack-labs/sqlaide/pkg/dialects/postgres"
)

func init() {
	adapter.Register(pgdialect.Postgres.Name, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}

// Adapter implements adapter.Adapter for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a PostgreSQL adapter. A nil logger discards output.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger}}
}

// Dialect returns the PostgreSQL dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return pgdialect.Postgres
}

// Connect establishes a connection to PostgreSQL. The connection string is
// validated with pgx before opening.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := buildPostgresDSN(cfg)
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("invalid postgres dsn: %w", err)
	}

	a.Logger.Debug("connecting to postgres",
		slog.String("host", connCfg.Host),
		slog.String("database", connCfg.Database))

	db := stdlib.OpenDB(*connCfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	if cfg.Schema != "" {
		setPath := "SET search_path TO " + pgdialect.Postgres.QuoteIdentifier(cfg.Schema)
		if _, err := db.ExecContext(ctx, setPath); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to set search_path: %w", err)
		}
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildPostgresDSN returns cfg.DSN when set, otherwise a key=value
// connection string built from the individual fields. Extra Options are
// appended in key order.
func buildPostgresDSN(cfg adapter.Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	opts := map[string]string{"sslmode": "disable"}
	for k, v := range cfg.Options {
		opts[k] = v
	}

	parts := []string{
		"host=" + quoteDSNValue(host),
		fmt.Sprintf("port=%d", port),
	}
	if cfg.Database != "" {
		parts = append(parts, "dbname="+quoteDSNValue(cfg.Database))
	}
	if cfg.Username != "" {
		parts = append(parts, "user="+quoteDSNValue(cfg.Username))
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+quoteDSNValue(cfg.Password))
	}

	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+quoteDSNValue(opts[k]))
	}
	return strings.Join(parts, " ")
}

// quoteDSNValue single-quotes values containing spaces or quotes, as
// libpq key=value strings require.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// GetTableMetadata reads column metadata from information_schema. An
// unqualified table uses the connection schema, or public.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	if a.Cfg.Schema != "" && !strings.Contains(table, ".") {
		table = a.Cfg.Schema + "." + table
	}
	return a.GetTableMetadataCommon(ctx, table, pgdialect.Postgres)
}

var _ adapter.Adapter = (*Adapter)(nil)

