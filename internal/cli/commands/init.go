package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	intconfig "github.com/leapstack-labs/sqlaide/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new sqlaide project",
		Long: `Initialize a new sqlaide project.

This creates:
  - sqlaide.yaml with a SQLite target
  - schema.yaml with an example enum and table`,
		Example: `  # Initialize in current directory
  sqlaide init

  # Initialize in a new directory
  sqlaide init my-project

  # Force overwrite existing files
  sqlaide init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := NewCommandContext(cmd).Renderer

			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
			configPath := filepath.Join(dir, intconfig.ConfigFileName)
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
			}

			files, err := copyTemplate("minimal", dir, force)
			if err != nil {
				return fmt.Errorf("failed to initialize project: %w", err)
			}
			for _, f := range files {
				r.Success(f)
			}

			r.Println("")
			r.Println("Next steps:")
			r.Println("  sqlaide lint     Check the schema")
			r.Println("  sqlaide ddl      Print the CREATE TABLE statements")
			r.Println("  sqlaide apply    Create the tables in app.db")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}
