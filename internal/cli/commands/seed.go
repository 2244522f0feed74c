package commands

import (
	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	var dialectName string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Render the seed inserts of every enum table",
		Long: `Print one INSERT per enum row, in declaration order.

created_at is left to its column default.`,
		Example: `  sqlaide seed
  sqlaide seed --dialect mysql`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			schema, err := cmdCtx.LoadSchema()
			if err != nil {
				return err
			}
			d, err := cmdCtx.Dialect(dialectName)
			if err != nil {
				return err
			}
			if len(schema.Enums) == 0 {
				cmdCtx.Renderer.Warning("schema declares no enum tables")
				return nil
			}
			seeds, err := schema.Seeds()
			if err != nil {
				return err
			}
			cmdCtx.Renderer.SQL(seeds.SQL(cmdCtx.EmitContext(d)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "", "Dialect to render for (default: configured dialect)")
	return cmd
}
