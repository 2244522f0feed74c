package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlaide/internal/cli/output"
	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

// DialectJSON is the JSON shape of one dialect.
type DialectJSON struct {
	Name           string   `json:"name"`
	Presentation   string   `json:"presentation"`
	Family         string   `json:"family"`
	Aliases        []string `json:"aliases,omitempty"`
	Quote          string   `json:"quote"`
	AutoIncrement  string   `json:"auto_increment"`
	Terminator     string   `json:"terminator"`
	BatchSeparator string   `json:"batch_separator,omitempty"`
	Returning      bool     `json:"returning"`
	Arrays         bool     `json:"arrays"`
	Adapter        bool     `json:"adapter"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "List the registered SQL dialects",
		Long: `List every dialect DDL can be rendered for, with the facts that
drive rendering. The adapter column shows whether apply and migrate can
connect to a database of that kind.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd).WithFormat(cmd, format).Renderer

			names := dialect.List()
			facts := make([]DialectJSON, 0, len(names))
			for _, name := range names {
				d, _ := dialect.Get(name)
				facts = append(facts, DescribeDialect(d))
			}

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(facts)
			}
			rows := make([][]string, 0, len(facts))
			for _, f := range facts {
				rows = append(rows, []string{
					f.Name,
					f.Presentation,
					f.Family,
					strings.Join(f.Aliases, ", "),
					f.Quote,
					f.AutoIncrement,
					f.BatchSeparator,
					yesNo(f.Adapter),
				})
			}
			r.Table([]string{"Name", "Product", "Family", "Aliases", "Quote", "Auto Increment", "Batch", "Adapter"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json, markdown")
	return cmd
}

// DescribeDialect collects the rendering facts of d.
func DescribeDialect(d *dialect.Dialect) DialectJSON {
	ai := d.AutoIncrement()
	return DialectJSON{
		Name:           d.Name,
		Presentation:   d.Identity(dialect.IdentityPresentation),
		Family:         d.Family.String(),
		Aliases:        d.Aliases(),
		Quote:          d.QuoteIdentifier("x"),
		AutoIncrement:  strings.TrimSpace(ai.TypeName + " " + ai.Decoration),
		Terminator:     d.Terminator(),
		BatchSeparator: d.BatchSeparator(),
		Returning:      d.SupportsReturning(),
		Arrays:         d.SupportsArrays(),
		Adapter:        adapter.IsRegistered(d.Name),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
