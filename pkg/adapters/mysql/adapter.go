// Package mysql provides a MySQL and MariaDB database adapter.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	mysqldialect "github.com/leapstack-labs/sqlaide/pkg/dialects/mysql"
)

func init() {
	adapter.Register(mysqldialect.MySQL.Name, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}

// Adapter implements adapter.Adapter for MySQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a MySQL adapter. A nil logger discards output.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger}}
}

// Dialect returns the MySQL dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return mysqldialect.MySQL
}

// Connect establishes a connection to MySQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	driverCfg, err := buildMySQLConfig(cfg)
	if err != nil {
		return err
	}
	a.Logger.Debug("connecting to mysql",
		slog.String("addr", driverCfg.Addr),
		slog.String("database", driverCfg.DBName))

	connector, err := mysql.NewConnector(driverCfg)
	if err != nil {
		return fmt.Errorf("failed to create mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping mysql: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildMySQLConfig parses cfg.DSN when set, otherwise assembles a driver
// config from the individual fields. Options become connection params.
func buildMySQLConfig(cfg adapter.Config) (*mysql.Config, error) {
	if cfg.DSN != "" {
		c, err := mysql.ParseDSN(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", err)
		}
		return c, nil
	}

	c := mysql.NewConfig()
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	c.Net = "tcp"
	c.Addr = host + ":" + strconv.Itoa(port)
	c.User = cfg.Username
	c.Passwd = cfg.Password
	c.DBName = cfg.Database
	c.ParseTime = true
	if len(cfg.Options) > 0 {
		c.Params = make(map[string]string, len(cfg.Options))
		for k, v := range cfg.Options {
			c.Params[k] = v
		}
	}
	return c, nil
}

// GetTableMetadata reads column metadata from information_schema. MySQL
// schemas are databases, so an unqualified table uses the connected one.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	if !strings.Contains(table, ".") {
		db := a.Cfg.Database
		if c, err := buildMySQLConfig(a.Cfg); err == nil && c.DBName != "" {
			db = c.DBName
		}
		table = db + "." + table
	}
	return a.GetTableMetadataCommon(ctx, table, mysqldialect.MySQL)
}

var _ adapter.Adapter = (*Adapter)(nil)
