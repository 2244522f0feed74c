package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strconv"

	cliconfig "github.com/leapstack-labs/sqlaide/internal/cli/config"
	"github.com/leapstack-labs/sqlaide/internal/config"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// fieldDescriptions documents the keys read from sqlaide.yaml.
var fieldDescriptions = map[string]string{
	"dialect":                "Dialect DDL is rendered for",
	"namespace":              "Schema that qualifies every table name",
	"idempotent":             "Render CREATE TABLE IF NOT EXISTS for every table",
	"unquoted":               "Leave identifiers unquoted",
	"varchar_default_length": "Length of VARCHAR columns declared without one",
	"schema":                 "Path to the schema document",
	"migrations_dir":         "Path to the migrations directory",
	"verbose":                "Log debug output to stderr",
	"output":                 "Output format: auto, text, markdown, json",
	"target":                 "Database that apply and migrate connect to",
	"lint":                   "Lint rule configuration",

	"target.type":     "Adapter: sqlite, duckdb, postgres, mysql, mssql",
	"target.database": "File path (SQLite, DuckDB) or database name",
	"target.dsn":      "Driver connection string; overrides the network fields",
	"target.host":     "Database host",
	"target.port":     "Database port; defaults per adapter",
	"target.user":     "Database username",
	"target.password": "Database password",
	"target.schema":   "Default schema; defaults per dialect",
	"target.options":  "Additional driver-specific options",
	"target.params":   "Adapter-specific settings (e.g. DuckDB extensions)",
}

var fieldDefaults = map[string]string{
	"dialect":                config.DefaultDialect,
	"schema":                 config.DefaultSchemaFile,
	"migrations_dir":         config.DefaultMigrationsDir,
	"varchar_default_length": strconv.Itoa(config.DefaultVarcharLength),
	"output":                 cliconfig.DefaultOutput,
}

// configFields walks the koanf tags of t, prefixing nested keys.
func configFields(t reflect.Type, prefix string) []ConfigField {
	var fields []ConfigField
	for i := range t.NumField() {
		f := t.Field(i)
		key := f.Tag.Get("koanf")
		if key == "" || key == "-" {
			continue
		}
		name := prefix + key
		fields = append(fields, ConfigField{
			Name:        name,
			Type:        f.Type.String(),
			Default:     fieldDefaults[name],
			Description: fieldDescriptions[name],
		})
	}
	return fields
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "sqlaide configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("sqlaide is configured via `sqlaide.yaml` in your project root. Relative paths resolve against the directory of the file.")

	w.Header(2, "Project Settings")
	writeFieldTable(w, configFields(reflect.TypeFor[cliconfig.Config](), ""))

	w.Header(2, "Target Configuration")
	w.Paragraph("The `target` key selects the database `apply` and `migrate` connect to.")
	writeFieldTable(w, configFields(reflect.TypeFor[cliconfig.TargetConfig](), "target."))

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# sqlaide.yaml
dialect: postgres
namespace: app
schema: schema.yaml
migrations_dir: migrations
varchar_default_length: 255

target:
  type: postgres
  host: localhost
  user: app
  password: secret
  database: app

lint:
  consequence:
    TB02: fatal_ddl`)

	w.Header(2, "Environment Variables")
	w.Paragraph("Every key can be overridden with a `SQLAIDE_` variable. Nested keys use a double underscore, so `SQLAIDE_TARGET__DSN` sets `target.dsn`.")

	log.Printf("  Generated configuration.md")
	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}

func writeFieldTable(w *MarkdownWriter, fields []ConfigField) {
	var rows [][]string
	for _, f := range fields {
		def := f.Default
		if def == "" {
			def = "-"
		} else {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, def, f.Description})
	}
	w.Table([]string{"Field", "Type", "Default", "Description"}, rows)
}
