package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlaide/internal/cli/config"
	"github.com/leapstack-labs/sqlaide/internal/cli/output"
	intconfig "github.com/leapstack-labs/sqlaide/internal/config"
	"github.com/leapstack-labs/sqlaide/internal/loader"
	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	"github.com/leapstack-labs/sqlaide/pkg/domain"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the config and logger
// stored on the command's context by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.GetConfig(ctx)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// WithFormat replaces the renderer when format overrides the configured
// output mode.
func (c *CommandContext) WithFormat(cmd *cobra.Command, format string) *CommandContext {
	if format != "" {
		c.Renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}
	return c
}

// Dialect resolves the configured dialect. A non-empty name overrides it.
func (c *CommandContext) Dialect(name string) (*dialect.Dialect, error) {
	if name == "" {
		name = c.Cfg.Dialect
	}
	return dialect.Lookup(name)
}

// LoadSchema reads and compiles the configured schema document.
func (c *CommandContext) LoadSchema() (*loader.Schema, error) {
	doc, err := loader.LoadFile(c.Cfg.SchemaFile)
	if err != nil {
		return nil, err
	}
	return c.Compile(doc)
}

// Compile applies the CLI-wide schema switches to doc and compiles it.
func (c *CommandContext) Compile(doc *loader.Document) (*loader.Schema, error) {
	if doc.Namespace == "" {
		doc.Namespace = c.Cfg.Namespace
	}
	if c.Cfg.Idempotent {
		for i := range doc.Enums {
			doc.Enums[i].Idempotent = true
		}
		for i := range doc.Tables {
			doc.Tables[i].Idempotent = true
		}
	}
	factory := domain.NewFactory(
		domain.WithLogger(c.Logger),
		domain.WithVarcharDefaultLength(c.Cfg.VarcharDefaultLength),
	)
	schema, err := loader.Compile(doc, loader.WithFactory(factory), loader.WithLogger(c.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", c.Cfg.SchemaFile, err)
	}
	return schema, nil
}

// EmitContext returns the rendering context for d.
func (c *CommandContext) EmitContext(d *dialect.Dialect) *emit.Context {
	opts := []emit.Option{emit.WithLogger(c.Logger)}
	if c.Cfg.Unquoted {
		opts = append(opts, emit.WithoutQuotedIdentifiers())
	}
	return emit.NewContext(d, opts...)
}

// Connect creates and connects the adapter for the configured target.
// The caller must close it.
func (c *CommandContext) Connect(ctx context.Context) (adapter.Adapter, error) {
	if err := c.Cfg.RequireTarget(); err != nil {
		return nil, err
	}
	cfg := intconfig.AdapterConfig(c.Cfg.Target)
	adp, err := adapter.NewAdapter(cfg, c.Logger)
	if err != nil {
		return nil, err
	}
	if err := adp.Connect(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Type, err)
	}
	c.Logger.Debug("connected", slog.String("type", cfg.Type))
	return adp, nil
}
