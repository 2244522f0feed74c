package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlaide/internal/loader"
	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

// ApplyOptions holds options for the apply command.
type ApplyOptions struct {
	DryRun bool
	Seeds  bool
	Verify bool
}

// NewApplyCommand creates the apply command.
func NewApplyCommand() *cobra.Command {
	opts := &ApplyOptions{}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create the schema in the configured target database",
		Long: `Render the schema for the target's dialect and execute it.

Statements run in one transaction, so a failing statement leaves the
database unchanged. Declare tables and enums idempotent (or pass
--idempotent) and skip the seed rows with --seeds=false to apply
repeatedly.

After applying, every table is read back from the database. A table whose
column count differs from the schema, typically one an idempotent CREATE
skipped, is reported as a warning.`,
		Example: `  # Apply DDL and enum seeds
  sqlaide apply

  # Show the statements without connecting
  sqlaide apply --dry-run

  # Apply to an ad-hoc SQLite file
  SQLAIDE_TARGET__TYPE=sqlite SQLAIDE_TARGET__DATABASE=app.db sqlaide apply --idempotent`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the statements instead of executing them")
	cmd.Flags().BoolVar(&opts.Seeds, "seeds", true, "Insert enum seed rows after the DDL")
	cmd.Flags().BoolVar(&opts.Verify, "verify", true, "Compare the created tables with the schema after applying")

	return cmd
}

func runApply(cmd *cobra.Command, opts *ApplyOptions) error {
	cmdCtx := NewCommandContext(cmd)
	if err := cmdCtx.Cfg.RequireTarget(); err != nil {
		return err
	}

	schema, err := cmdCtx.LoadSchema()
	if err != nil {
		return err
	}
	statements, err := schema.Statements(opts.Seeds)
	if err != nil {
		return err
	}

	if opts.DryRun {
		d, err := dialect.Lookup(cmdCtx.Cfg.Target.Type)
		if err != nil {
			return err
		}
		rendered := adapter.Render(cmdCtx.EmitContext(d), statements...)
		cmdCtx.Renderer.SQL(strings.Join(rendered, d.Terminator()+"\n") + d.Terminator())
		return nil
	}

	ctx := cmd.Context()
	adp, err := cmdCtx.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = adp.Close() }()

	n, err := adapter.Apply(ctx, adp, cmdCtx.EmitContext(adp.Dialect()), statements...)
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}
	cmdCtx.Logger.Info("schema applied",
		slog.String("target", cmdCtx.Cfg.Target.Type),
		slog.Int("statements", n))
	cmdCtx.Renderer.Success(fmt.Sprintf("applied %d statement(s) to %s", n, adp.Dialect().Identity(dialect.IdentityPresentation)))

	if !opts.Verify {
		return nil
	}
	return verifyTables(ctx, cmdCtx, adp, schema)
}

// verifyTables reads every persistent table back and warns about column
// count drift.
func verifyTables(ctx context.Context, cmdCtx *CommandContext, adp adapter.Adapter, schema *loader.Schema) error {
	tables, err := schema.CreationOrder()
	if err != nil {
		return err
	}
	for _, def := range tables {
		if def.Options().Temp {
			continue
		}
		name := def.Name()
		if ns := def.Options().Namespace; ns != "" {
			name = ns + "." + name
		}
		meta, err := adp.GetTableMetadata(ctx, name)
		if err != nil {
			return fmt.Errorf("verify %s: %w", name, err)
		}
		declared := len(def.Columns())
		cmdCtx.Logger.Debug("table verified",
			slog.String("table", name),
			slog.Int("columns", len(meta.Columns)))
		if len(meta.Columns) != declared {
			cmdCtx.Renderer.Warning(fmt.Sprintf("table %s has %d column(s), schema declares %d", name, len(meta.Columns), declared))
		}
	}
	return nil
}
