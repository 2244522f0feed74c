package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlaide/internal/loader"
	"github.com/leapstack-labs/sqlaide/internal/migrate"
	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

// DDLOptions holds options for the ddl command.
type DDLOptions struct {
	Dialect  string
	All      bool
	Seeds    bool
	Checksum bool
	Watch    bool
}

// NewDDLCommand creates the ddl command.
func NewDDLCommand() *cobra.Command {
	opts := &DDLOptions{}
	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Render CREATE TABLE statements for the schema",
		Long: `Compile the schema document and print its DDL.

Tables are rendered in the order the schema declares them. Use
apply or migrate to execute them in foreign key order.
Enum seed inserts follow the DDL when --seeds is given.`,
		Example: `  # Render for the configured dialect
  sqlaide ddl

  # Render for PostgreSQL with seed rows
  sqlaide ddl --dialect postgres --seeds

  # Render for every registered dialect
  sqlaide ddl --all

  # Re-render on every save
  sqlaide ddl --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			if opts.Watch {
				return watchDDL(cmd, cmdCtx, opts)
			}
			schema, err := cmdCtx.LoadSchema()
			if err != nil {
				return err
			}
			if opts.All {
				return renderAllDialects(cmd.Context(), cmdCtx, schema, opts.Seeds)
			}
			return renderDDL(cmdCtx, schema, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "Dialect to render for (default: configured dialect)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Render for every registered dialect")
	cmd.Flags().BoolVar(&opts.Seeds, "seeds", false, "Append enum seed inserts")
	cmd.Flags().BoolVar(&opts.Checksum, "checksum", false, "Print the statement checksum instead of the SQL")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-render when the schema file changes")
	cmd.MarkFlagsMutuallyExclusive("all", "watch")

	return cmd
}

func renderDDL(cmdCtx *CommandContext, schema *loader.Schema, opts *DDLOptions) error {
	d, err := cmdCtx.Dialect(opts.Dialect)
	if err != nil {
		return err
	}
	ectx := cmdCtx.EmitContext(d)

	if opts.Checksum {
		statements, err := schema.Statements(opts.Seeds)
		if err != nil {
			return err
		}
		cmdCtx.Renderer.Println(migrate.Checksum(adapter.Render(ectx, statements...)))
		return nil
	}

	sql, err := schemaSQL(ectx, schema, opts.Seeds)
	if err != nil {
		return err
	}
	cmdCtx.Renderer.SQL(sql)
	return nil
}

// schemaSQL renders the schema DDL as one script, followed by the seed
// inserts when withSeeds is set.
func schemaSQL(ectx *emit.Context, schema *loader.Schema, withSeeds bool) (string, error) {
	parts := []any{schema.DDL()}
	if withSeeds && len(schema.Enums) > 0 {
		seeds, err := schema.Seeds()
		if err != nil {
			return "", err
		}
		parts = append(parts, emit.Comment("seed rows"), seeds)
	}
	return emit.Sequence(parts...).SQL(ectx), nil
}

// renderAllDialects renders the schema for every registered dialect
// concurrently and prints the results in registry order.
func renderAllDialects(ctx context.Context, cmdCtx *CommandContext, schema *loader.Schema, withSeeds bool) error {
	names := dialect.List()
	scripts := make([]string, len(names))

	g, _ := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			d, err := dialect.Lookup(name)
			if err != nil {
				return err
			}
			ectx := cmdCtx.EmitContext(d)
			sql, err := schemaSQL(ectx, schema, withSeeds)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			scripts[i] = emit.Comment(d.Identity(dialect.IdentityPresentation)).SQL(ectx) + "\n" + sql
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, script := range scripts {
		if i > 0 {
			cmdCtx.Renderer.Println("")
		}
		cmdCtx.Renderer.SQL(script)
	}
	return nil
}

func watchDDL(cmd *cobra.Command, cmdCtx *CommandContext, opts *DDLOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmdCtx.Renderer.Warning(fmt.Sprintf("watching %s, press Ctrl+C to stop", cmdCtx.Cfg.SchemaFile))
	return loader.Watch(ctx, cmdCtx.Cfg.SchemaFile, cmdCtx.Logger, func(doc *loader.Document, err error) {
		if err == nil {
			var schema *loader.Schema
			if schema, err = cmdCtx.Compile(doc); err == nil {
				err = renderDDL(cmdCtx, schema, opts)
			}
		}
		if err != nil {
			var parseErr *loader.ParseError
			if errors.As(err, &parseErr) {
				cmdCtx.Logger.Debug("schema parse failed", slog.String("path", parseErr.File))
			}
			cmdCtx.Renderer.Warning(err.Error())
		}
	})
}
