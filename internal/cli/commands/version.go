package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display sqlaide version and the compiled-in dialects and adapters.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sqlaide v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dialects: %s\n", strings.Join(dialect.List(), ", "))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Adapters: %s\n", strings.Join(adapter.ListAdapters(), ", "))
		},
	}
}
