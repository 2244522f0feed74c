// Package main provides a generator that extracts the reserved keywords of
// an embedded engine and generates the reserved word list of its dialect.
//
// Usage:
//
//	go run ./scripts/gendialect -dialect=duckdb -out=pkg/dialects/duckdb/keywords_gen.go
package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

var (
	dialectFlag = flag.String("dialect", "duckdb", "dialect to generate (only 'duckdb' supported)")
	outFlag     = flag.String("out", "", "output file path (required)")
)

// source describes how to read the keywords of one engine.
type source struct {
	driver  string
	version string
	query   string
	pkg     string
	varName string
}

var sources = map[string]source{
	"duckdb": {
		driver:  "duckdb",
		version: "SELECT version()",
		query:   `SELECT keyword_name FROM duckdb_keywords() WHERE keyword_category = 'reserved' ORDER BY keyword_name`,
		pkg:     "duckdb",
		varName: "duckdbReservedWords",
	},
}

func main() {
	flag.Parse()

	if *outFlag == "" {
		log.Fatal("--out flag is required")
	}

	src, ok := sources[*dialectFlag]
	if !ok {
		log.Fatalf("unsupported dialect: %s (only 'duckdb' is supported)", *dialectFlag)
	}

	db, err := sql.Open(src.driver, "")
	if err != nil {
		log.Fatalf("failed to open %s: %v", src.driver, err)
	}

	ctx := context.Background()

	var version string
	if err := db.QueryRowContext(ctx, src.version).Scan(&version); err != nil {
		_ = db.Close()
		log.Fatalf("failed to get version: %v", err)
	}
	log.Printf("Connected to %s %s", *dialectFlag, version)

	keywords, err := extractKeywords(ctx, db, src)
	if err != nil {
		_ = db.Close()
		log.Fatalf("failed to extract keywords: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("warning: failed to close db: %v", err)
	}

	// The standard words are registered separately on every dialect.
	keywords = withoutStandard(keywords)
	log.Printf("Extracted %d keywords beyond the standard set", len(keywords))

	code := generateCode(src, *dialectFlag, version, keywords)

	formatted, err := format.Source([]byte(code))
	if err != nil {
		log.Printf("Warning: failed to format generated code: %v", err)
		formatted = []byte(code)
	}

	if err := os.WriteFile(*outFlag, formatted, 0o600); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}

	log.Printf("Generated %s", *outFlag)
}

func extractKeywords(ctx context.Context, db *sql.DB, src source) ([]string, error) {
	rows, err := db.QueryContext(ctx, src.query)
	if err != nil {
		return nil, fmt.Errorf("query keywords: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keywords []string
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		keywords = append(keywords, strings.ToLower(kw))
	}
	return keywords, rows.Err()
}

func withoutStandard(keywords []string) []string {
	standard := make(map[string]bool)
	for _, w := range dialect.StandardReservedWords() {
		standard[strings.ToLower(w)] = true
	}
	out := keywords[:0]
	for _, kw := range keywords {
		if !standard[kw] {
			out = append(out, kw)
		}
	}
	return out
}

func generateCode(src source, name, version string, keywords []string) string {
	var buf bytes.Buffer

	buf.WriteString("// Code generated by scripts/gendialect. DO NOT EDIT.\n")
	fmt.Fprintf(&buf, "// Source: %s %s\n\n", name, version)
	fmt.Fprintf(&buf, "package %s\n\n", src.pkg)

	fmt.Fprintf(&buf, "// %s contains %s keywords beyond the SQL standard set.\n", src.varName, name)
	fmt.Fprintf(&buf, "var %s = []string{\n", src.varName)
	writeStringSlice(&buf, keywords)
	buf.WriteString("}\n")

	return buf.String()
}

func writeStringSlice(buf *bytes.Buffer, items []string) {
	const itemsPerLine = 6
	for i, item := range items {
		if i%itemsPerLine == 0 {
			buf.WriteString("\t")
		}
		fmt.Fprintf(buf, "%q, ", item)
		if (i+1)%itemsPerLine == 0 {
			buf.WriteString("\n")
		}
	}
	if len(items)%itemsPerLine != 0 {
		buf.WriteString("\n")
	}
}
