package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/sqlaide/internal/cli/commands"
	"github.com/leapstack-labs/sqlaide/internal/loader"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

// sampleSchema is rendered for every dialect to show its DDL.
const sampleSchema = `
enums:
  - {name: status, kind: ordinal, values: [active, inactive]}
tables:
  - name: account
    columns:
      - {name: account_id, type: integer, role: autoinc}
      - {name: email, type: varchar, max: 120, role: unique}
      - {name: status, references: {table: status, column: code}}
      - {name: created_at, type: timestamp, default_sql: CURRENT_TIMESTAMP, optional_in_insert: true}
`

// generateDialectDocs generates the dialect reference page.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	doc, err := loader.Parse([]byte(sampleSchema))
	if err != nil {
		return fmt.Errorf("failed to parse sample schema: %w", err)
	}
	schema, err := loader.Compile(doc)
	if err != nil {
		return fmt.Errorf("failed to compile sample schema: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "SQL dialects supported by sqlaide")
	w.GeneratedMarker()

	w.Header(1, "Dialects")
	w.Paragraph("Every dialect renders the same schema document. Select one with `--dialect` or the `dialect` key of `sqlaide.yaml`.")

	headers := []string{"Name", "Family", "Aliases", "Quote", "Auto increment", "Adapter"}
	var rows [][]string
	for _, name := range dialect.List() {
		d, _ := dialect.Get(name)
		f := commands.DescribeDialect(d)
		adapterCell := "-"
		if f.Adapter {
			adapterCell = "yes"
		}
		aliases := make([]string, len(f.Aliases))
		for i, alias := range f.Aliases {
			aliases[i] = InlineCode(alias)
		}
		rows = append(rows, []string{
			InlineCode(f.Name),
			f.Family,
			strings.Join(aliases, ", "),
			InlineCode(f.Quote),
			f.AutoIncrement,
			adapterCell,
		})
	}
	w.Table(headers, rows)

	w.Header(2, "Sample Output")
	w.CodeBlock("yaml", strings.TrimSpace(sampleSchema))
	for _, name := range dialect.List() {
		d, _ := dialect.Get(name)
		ctx := emit.NewContext(d)
		w.Header(3, d.Identity(dialect.IdentityPresentation))
		w.CodeBlock("sql", schema.DDL().SQL(ctx))
	}

	log.Printf("  Generated dialects.md")
	return os.WriteFile(filepath.Join(outDir, "dialects.md"), w.Bytes(), 0600)
}
