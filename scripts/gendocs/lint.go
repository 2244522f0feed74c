package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
	_ "github.com/leapstack-labs/sqlaide/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"table": "Rules about table names, keys, and the columns a table declares.",
}

// generateLintDocs generates all lint documentation files.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := lint.GetAll()

	if err := generateLintIndex(outDir, len(rules)); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	if err := generateRulesPage(outDir, rules); err != nil {
		return err
	}
	log.Printf("  Generated rules.md")

	return nil
}

// generateLintIndex generates the main linting overview page.
func generateLintIndex(outDir string, count int) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Linting", "Schema lint rules for sqlaide")
	w.GeneratedMarker()

	w.Header(1, "Linting")
	w.Paragraph(fmt.Sprintf("sqlaide lints every compiled table with **%d rules**. Issues are advisory: they never block rendering.", count))

	w.Header(2, "Consequences")
	w.Paragraph("Each issue carries a consequence. The statement kind tells which SQL the issue affects:")
	consequences := []core.Consequence{
		core.InformationalDDL, core.ConventionDDL, core.WarningDDL, core.FatalDDL,
	}
	var rows [][]string
	for _, c := range consequences {
		rows = append(rows, []string{InlineCode(c.Key()), c.String(), c.Severity().String()})
	}
	w.Table([]string{"Key", "Label", "Severity"}, rows)
	w.Paragraph("A fatal issue makes `sqlaide lint` exit with an error.")

	w.Header(2, "Configuration")
	w.Paragraph("Rules can be configured in `sqlaide.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled:
    - TB01              # disable rule
  consequence:
    TB02: fatal_ddl     # override consequence
  rules:
    TB05:
      length: 2000      # rule-specific option`)

	w.Header(2, "Rules")
	w.Paragraph("See [Rules](/linting/rules) for every rule with examples.")

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateRulesPage generates the rule reference page.
func generateRulesPage(outDir string, rules []lint.RuleDef) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Lint Rules", "Table lint rules for sqlaide")
	w.GeneratedMarker()

	w.Header(1, "Lint Rules")

	grouped := groupRules(rules)
	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	slices.Sort(groups)

	for _, group := range groups {
		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(group), group))
		w.Newline()

		if desc, ok := groupDescriptions[group]; ok {
			w.Paragraph(desc)
		}

		for _, rule := range grouped[group] {
			writeRuleDoc(w, rule)
		}
	}

	return os.WriteFile(filepath.Join(outDir, "rules.md"), w.Bytes(), 0600)
}

// groupRules organizes rules by their Group field, keeping ID order.
func groupRules(rules []lint.RuleDef) map[string][]lint.RuleDef {
	grouped := make(map[string][]lint.RuleDef)
	for _, r := range rules {
		grouped[r.Group] = append(grouped[r.Group], r)
	}
	return grouped
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.RuleDef) {
	// ### TB01 - table.name-singular {#TB01}
	w.Line(fmt.Sprintf("### %s - %s {#%s}", rule.ID, rule.Name, rule.ID))
	w.Newline()

	w.Line(fmt.Sprintf("**Consequence:** %s", InlineCode(rule.Consequence.Key())))
	w.Newline()

	if rule.Disabled {
		w.Line("**Disabled by default.** Enable it under `lint.enabled`.")
		w.Newline()
	}

	w.Paragraph(cleanDescription(rule.Description))

	if rule.Rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(strings.TrimSpace(rule.Rationale))
	}

	if rule.BadExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("sql", rule.BadExample)
	}

	if rule.GoodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("sql", rule.GoodExample)
	}

	if len(rule.ConfigKeys) > 0 {
		w.Header(4, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule accepts the following configuration options: %s",
			InlineCode(strings.Join(rule.ConfigKeys, ", "))))
	}

	w.Line("---")
	w.Newline()
}
