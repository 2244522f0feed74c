package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlaide/internal/cli/output"
	"github.com/leapstack-labs/sqlaide/internal/migrate"
	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

// NewMigrateCommand creates the migrate command group.
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Write and apply versioned schema migrations",
		Long: `Manage goose SQL migrations generated from the schema document.

Migrations are written to migrations_dir. A new migration is only written
when the rendered schema differs from the newest one.`,
	}
	cmd.AddCommand(newMigrateNewCommand())
	cmd.AddCommand(newMigrateUpCommand())
	cmd.AddCommand(newMigrateStatusCommand())
	return cmd
}

func newMigrateNewCommand() *cobra.Command {
	var (
		dialectName string
		seeds       bool
	)
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Write a migration for the current schema",
		Example: `  sqlaide migrate new init
  sqlaide migrate new --dialect postgres add_orders`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			name := "schema"
			if len(args) > 0 {
				name = args[0]
			}

			d, err := migrationDialect(cmdCtx, dialectName)
			if err != nil {
				return err
			}
			schema, err := cmdCtx.LoadSchema()
			if err != nil {
				return err
			}
			statements, err := schema.Statements(seeds)
			if err != nil {
				return err
			}

			tables, err := schema.DropOrder()
			if err != nil {
				return err
			}
			drops := make([]emit.Fragment, 0, len(tables))
			for _, def := range tables {
				drops = append(drops, def.Drop(true))
			}

			ectx := cmdCtx.EmitContext(d)
			m := migrate.New(time.Now().UTC(), name, adapter.Render(ectx, statements...), adapter.Render(ectx, drops...))
			path, err := migrate.Write(cmdCtx.Cfg.MigrationsDir, m)
			if errors.Is(err, migrate.ErrUnchanged) {
				cmdCtx.Renderer.Warning("schema unchanged, no migration written")
				return nil
			}
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Success("created " + path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "", "Dialect to render for (default: target type, then configured dialect)")
	cmd.Flags().BoolVar(&seeds, "seeds", true, "Include enum seed inserts")
	return cmd
}

// migrationDialect prefers an explicit name, then the target's dialect.
func migrationDialect(cmdCtx *CommandContext, name string) (*dialect.Dialect, error) {
	if name == "" && cmdCtx.Cfg.Target != nil && cmdCtx.Cfg.Target.Type != "" {
		name = cmdCtx.Cfg.Target.Type
	}
	return cmdCtx.Dialect(name)
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations to the target database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx := cmd.Context()
			adp, db, err := connectForMigrations(cmdCtx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = adp.Close() }()

			n, err := migrate.Up(ctx, db.SQLDB(), adp.Dialect(), cmdCtx.Cfg.MigrationsDir, cmdCtx.Logger)
			if err != nil {
				return err
			}
			if n == 0 {
				cmdCtx.Renderer.Success("database is up to date")
				return nil
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("applied %d migration(s)", n))
			return nil
		},
	}
}

func newMigrateStatusCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which migrations have been applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd).WithFormat(cmd, format)
			adp, db, err := connectForMigrations(cmdCtx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = adp.Close() }()

			statuses, err := migrate.Status(cmd.Context(), db.SQLDB(), adp.Dialect(), cmdCtx.Cfg.MigrationsDir)
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(statuses)
			}
			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				state, at := "pending", ""
				if s.Applied {
					state, at = "applied", s.AppliedAt.Format(time.RFC3339)
				}
				rows = append(rows, []string{strconv.FormatInt(s.Version, 10), s.File, state, at})
			}
			r.Table([]string{"Version", "File", "State", "Applied At"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json, markdown")
	return cmd
}

func connectForMigrations(cmdCtx *CommandContext, cmd *cobra.Command) (adapter.Adapter, adapter.DBProvider, error) {
	adp, err := cmdCtx.Connect(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	db, ok := adp.(adapter.DBProvider)
	if !ok {
		_ = adp.Close()
		return nil, nil, fmt.Errorf("%s adapter does not expose a database handle", adp.Dialect().Name)
	}
	return adp, db, nil
}
