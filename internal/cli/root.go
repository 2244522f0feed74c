// Package cli provides the command-line interface for sqlaide.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlaide/internal/cli/commands"
	"github.com/leapstack-labs/sqlaide/internal/cli/config"

	// Register adapters, and with them their dialects.
	_ "github.com/leapstack-labs/sqlaide/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/sqlaide/pkg/adapters/mssql"
	_ "github.com/leapstack-labs/sqlaide/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/sqlaide/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/sqlaide/pkg/adapters/sqlite"
	_ "github.com/leapstack-labs/sqlaide/pkg/lint/rules" // register lint rules
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// skipConfig lists commands that run without loading configuration.
var skipConfig = map[string]bool{
	"help":       true,
	"completion": true,
	"__complete": true,
	"init":       true,
	"version":    true,
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sqlaide",
		Short: "sqlaide - schema to SQL compiler",
		Long: `sqlaide compiles a YAML schema document into dialect-specific SQL.

It renders CREATE TABLE statements and enum seed inserts for SQLite,
DuckDB, PostgreSQL, MySQL and SQL Server, lints the schema, and applies
it to a database directly or through versioned migrations.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipConfig[cmd.Name()] {
				return nil
			}

			loader := config.NewLoader()
			cfg, err := loader.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = config.WithConfig(ctx, cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if loader.ConfigFileUsed != "" {
				logger.Debug("using config file", slog.String("path", loader.ConfigFileUsed))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./sqlaide.yaml)")
	flags.String("namespace", "", "Schema that qualifies table names")
	flags.String("schema", "", "Path to the schema document")
	flags.String("migrations-dir", "", "Path to the migrations directory")
	flags.Int("varchar-default-length", 0, "Length of VARCHAR columns declared without one")
	flags.Bool("idempotent", false, "Render CREATE TABLE IF NOT EXISTS for every table")
	flags.Bool("unquoted", false, "Leave identifiers unquoted")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewDDLCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewLintCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(commands.NewApplyCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sqlaide.

To load completions:

Bash:
  $ source <(sqlaide completion bash)

Zsh:
  $ sqlaide completion zsh > "${fpath[1]}/_sqlaide"

Fish:
  $ sqlaide completion fish | source

PowerShell:
  PS> sqlaide completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
