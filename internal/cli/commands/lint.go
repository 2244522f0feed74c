package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlaide/internal/cli/output"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format  string   // Output format: text, json, markdown
	Disable []string // Rule IDs to disable
	Summary bool     // Print issues as SQL comments
}

// lintLocationWidth bounds the location column in tabular output.
const lintLocationWidth = 60

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Run lint rules on the schema",
		Long: `Compile the schema and report lint issues for every table.

Rules and their consequences can be configured in the lint section of
sqlaide.yaml. The command fails when any issue is fatal.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the configured schema
  sqlaide lint

  # Output as JSON
  sqlaide lint --format json

  # Disable specific rules
  sqlaide lint --disable TB01,TB05

  # Print issues as SQL comments
  sqlaide lint --summary`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Print issues as SQL comments")

	return cmd
}

// LintIssueJSON is the JSON shape of one lint issue.
type LintIssueJSON struct {
	RuleID      string `json:"rule_id"`
	Consequence string `json:"consequence"`
	Message     string `json:"message"`
	Location    string `json:"location,omitempty"`
}

// LintJSONOutput is the JSON output structure for the lint command.
type LintJSONOutput struct {
	Issues []LintIssueJSON `json:"issues"`
	Fatal  bool            `json:"fatal"`
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd).WithFormat(cmd, opts.Format)
	r := cmdCtx.Renderer

	cfg, err := cmdCtx.Cfg.LintRules()
	if err != nil {
		return err
	}
	for _, id := range opts.Disable {
		if _, ok := lint.GetByID(id); !ok {
			return fmt.Errorf("unknown rule %q", id)
		}
		cfg.Disable(id)
	}

	schema, err := cmdCtx.LoadSchema()
	if err != nil {
		return err
	}
	issues := schema.Lint(cfg)

	switch {
	case opts.Summary:
		d, err := cmdCtx.Dialect("")
		if err != nil {
			return err
		}
		r.SQL(emit.LintSummary(issues).SQL(cmdCtx.EmitContext(d)))
	case r.EffectiveMode() == output.ModeJSON:
		if err := lintJSON(r, issues); err != nil {
			return err
		}
	default:
		lintTable(r, issues)
	}

	if issues.HasFatal() {
		return fmt.Errorf("lint failed: fatal issues found")
	}
	return nil
}

func lintJSON(r *output.Renderer, issues *lint.Issues) error {
	out := LintJSONOutput{Issues: []LintIssueJSON{}, Fatal: issues.HasFatal()}
	for _, issue := range issues.LintIssues() {
		out.Issues = append(out.Issues, LintIssueJSON{
			RuleID:      issue.RuleID,
			Consequence: issue.Consequence.Key(),
			Message:     issue.Message,
			Location:    issue.Where(0),
		})
	}
	return r.JSON(out)
}

func lintTable(r *output.Renderer, issues *lint.Issues) {
	list := issues.LintIssues()
	if len(list) == 0 {
		r.Success("no lint issues")
		return
	}

	styles := r.Styles()
	rows := make([][]string, 0, len(list))
	for _, issue := range list {
		consequence := issue.Consequence.String()
		if r.EffectiveMode() == output.ModeText {
			consequence = styles.Consequence(issue.Consequence).Render(consequence)
		}
		rows = append(rows, []string{issue.RuleID, consequence, issue.Message, issue.Where(lintLocationWidth)})
	}
	r.Table([]string{"Rule", "Consequence", "Message", "Location"}, rows)
	r.Printf("\n%d issue(s)\n", len(list))
}
