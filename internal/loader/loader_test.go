package loader

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlaide/internal/dag"
	"github.com/leapstack-labs/sqlaide/internal/testutil"
	"github.com/leapstack-labs/sqlaide/pkg/domain"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
	_ "github.com/leapstack-labs/sqlaide/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/sqlaide/pkg/table"
)

const accountSchema = `
namespace: app
enums:
  - {name: status, kind: ordinal, values: [active, inactive]}
  - name: plan
    kind: text
    pairs:
      - {code: free, value: Free}
tables:
  - name: membership
    columns:
      - {name: membership_id, type: integer, role: autoinc}
      - {name: account_id, references: {table: account, column: account_id, nature: belongs_to}}
      - {name: plan_code, references: {table: plan, column: code}}
  - name: account
    columns:
      - {name: account_id, type: integer, role: autoinc}
      - {name: email, type: varchar, max: 120, role: unique}
      - {name: status, type: integer, default: 0}
      - {name: manager_id, optional: true, references: {table: account, column: account_id}}
    unique:
      - [email, status]
`

func compile(t *testing.T, src string) *Schema {
	t.Helper()
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	schema, err := Compile(doc, WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	return schema
}

func TestCompile(t *testing.T) {
	schema := compile(t, accountSchema)

	require.Len(t, schema.Enums, 2)
	require.Len(t, schema.Tables, 2)
	assert.Equal(t, "app", schema.Namespace)

	ddl := schema.DDL().SQL(emit.NewContext(nil))
	assert.Contains(t, ddl, "CREATE TABLE \"app\".\"membership\" (\n"+
		"    \"membership_id\" INTEGER PRIMARY KEY AUTOINCREMENT,\n"+
		"    \"account_id\" INTEGER NOT NULL,\n"+
		"    \"plan_code\" TEXT NOT NULL,\n"+
		"    FOREIGN KEY(\"account_id\") REFERENCES \"app\".\"account\"(\"account_id\"),\n"+
		"    FOREIGN KEY(\"plan_code\") REFERENCES \"app\".\"plan\"(\"code\")\n"+
		");")
	assert.Contains(t, ddl, "    \"manager_id\" INTEGER,\n")
	assert.Contains(t, ddl, "    \"status\" INTEGER DEFAULT 0,\n")
	assert.Contains(t, ddl, "    UNIQUE(\"email\"),\n    UNIQUE(\"email\", \"status\")\n")

	membership := schema.Tables[0]
	col, ok := membership.Column("account_id")
	require.True(t, ok)
	assert.Equal(t, table.NatureBelongsTo, col.Reference.Nature)

	described := schema.Columns["account"]
	require.Len(t, described, 3)
	assert.Equal(t, "email", described[1].Raw.Name)
	email, _ := schema.Tables[1].Column("email")
	assert.Same(t, described[1].Domain, email.Domain)
}

func TestCompile_Seeds(t *testing.T) {
	schema := compile(t, accountSchema)
	seeds, err := schema.Seeds()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO \"app\".\"status\" (\"code\", \"value\") VALUES (0, 'active');\n"+
			"INSERT INTO \"app\".\"status\" (\"code\", \"value\") VALUES (1, 'inactive');\n"+
			"INSERT INTO \"app\".\"plan\" (\"code\", \"value\") VALUES ('free', 'Free');",
		seeds.SQL(emit.NewContext(nil)))
}

func TestCompile_EnumOptions(t *testing.T) {
	schema := compile(t, `
namespace: app
enums:
  - {name: status, kind: ordinal, idempotent: true, values: [active]}
  - {name: plan, kind: ordinal, namespace: billing, values: [free]}
tables:
  - name: account
    idempotent: true
    columns:
      - {name: account_id, type: integer, role: autoinc}
      - {name: status, references: {table: status, column: code}}
`)
	ctx := emit.NewContext(nil)

	ddl := schema.DDL().SQL(ctx)
	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS \"app\".\"status\" (")
	assert.Contains(t, ddl, "CREATE TABLE \"billing\".\"plan\" (")
	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS \"app\".\"account\" (")
	assert.Contains(t, ddl, "REFERENCES \"app\".\"status\"(\"code\")")

	seeds, err := schema.Seeds()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO \"app\".\"status\" (\"code\", \"value\") VALUES (0, 'active');\n"+
			"INSERT INTO \"billing\".\"plan\" (\"code\", \"value\") VALUES (0, 'free');",
		seeds.SQL(ctx))
}

func TestSchema_Statements(t *testing.T) {
	schema := compile(t, accountSchema)
	ctx := emit.NewContext(nil)

	ddlOnly, err := schema.Statements(false)
	require.NoError(t, err)
	assert.Len(t, ddlOnly, 4)

	all, err := schema.Statements(true)
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.Contains(t, all[0].SQL(ctx), "CREATE TABLE \"app\".\"status\"")
	assert.Equal(t, "INSERT INTO \"app\".\"plan\" (\"code\", \"value\") VALUES ('free', 'Free')", all[6].SQL(ctx))
}

func TestSchema_CreationOrder(t *testing.T) {
	schema := compile(t, accountSchema)

	names := func(defs []*table.Definition) []string {
		out := make([]string, len(defs))
		for i, def := range defs {
			out[i] = def.Name()
		}
		return out
	}
	built := names(schema.Arena.Tables())
	assert.Equal(t, []string{"status", "plan", "membership", "account"}, built)

	created, err := schema.CreationOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "plan", "account", "membership"}, names(created))

	dropped, err := schema.DropOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"membership", "account", "plan", "status"}, names(dropped))
}

func TestSchema_CreationOrder_Cycle(t *testing.T) {
	schema := compile(t, `
tables:
  - name: invoice
    columns:
      - {name: invoice_id, type: integer, role: pk}
      - {name: customer_id, optional: true, references: {table: customer, column: customer_id}}
  - name: customer
    columns:
      - {name: customer_id, type: integer, role: pk}
      - {name: last_invoice_id, optional: true, references: {table: invoice, column: invoice_id}}
`)
	_, err := schema.CreationOrder()
	var cycleErr *dag.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"invoice", "customer", "invoice"}, cycleErr.Path)

	_, err = schema.Statements(false)
	require.ErrorAs(t, err, &cycleErr)
}

func TestCompile_Lint(t *testing.T) {
	schema := compile(t, `
tables:
  - name: users
    columns:
      - {name: name, type: text}
  - name: item
    columns:
      - {name: item_id, type: integer, role: pk}
`)
	issues := schema.Lint(nil).LintIssues()
	require.Len(t, issues, 2)
	assert.Equal(t, "TB01", issues[0].RuleID)
	assert.Equal(t, "TB02", issues[1].RuleID)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name: "unknown type names the column",
			src: `
tables:
  - name: shape
    columns:
      - {name: outline, type: geometry}
`,
			wantErr: "unable to map outline type geometry to SQL domain",
		},
		{
			name: "reference to undeclared table",
			src: `
tables:
  - name: post
    columns:
      - {name: author_id, references: {table: author, column: author_id}}
`,
			wantErr: "not declared in the schema document",
		},
		{
			name: "forward reference to missing column",
			src: `
tables:
  - name: post
    columns:
      - {name: author_id, references: {table: author, column: nope}}
  - name: author
    columns:
      - {name: author_id, type: integer, role: autoinc}
`,
			wantErr: "not declared in the schema document",
		},
		{
			name: "unknown nature",
			src: `
tables:
  - name: a
    columns:
      - {name: a_id, type: integer, role: pk}
      - {name: parent, references: {table: a, column: a_id, nature: sibling}}
`,
			wantErr: `unknown reference nature "sibling"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			_, err = Compile(doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompile_UnmappedTypeError(t *testing.T) {
	doc, err := Parse([]byte(`
tables:
  - name: shape
    columns:
      - {name: outline, type: geometry}
`))
	require.NoError(t, err)
	_, err = Compile(doc)
	var unmapped *domain.UnmappedTypeError
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, "outline", unmapped.Identity)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unknown field", "tables:\n  - name: t\n    colums: []\n", "field colums not found"},
		{"duplicate table", "tables:\n  - {name: t}\n  - {name: t}\n", `table "t" declared twice`},
		{"unknown role", "tables:\n  - name: t\n    columns:\n      - {name: a, type: text, role: primary}\n", `unknown role "primary"`},
		{"typed reference", "tables:\n  - name: t\n    columns:\n      - {name: a, type: text, references: {table: t, column: b}}\n", "takes its type from the referenced column"},
		{"enum kind", "enums:\n  - {name: e, kind: bitmask}\n", `unknown kind "bitmask"`},
		{"ordinal with pairs", "enums:\n  - {name: e, pairs: [{code: a, value: A}]}\n", "takes values, not pairs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Tables)
}

func TestDescriptor(t *testing.T) {
	ctx := emit.NewContext(nil)
	tests := []struct {
		name string
		col  ColumnDoc
		want string
	}{
		{"varchar", ColumnDoc{Type: "varchar", Max: 10}, "VARCHAR(10)"},
		{"alias", ColumnDoc{Type: "string"}, "TEXT"},
		{"enum", ColumnDoc{Type: "enum", Values: []string{"a"}}, "INTEGER"},
		{"array", ColumnDoc{Type: "array", Elem: "integer"}, "JSON"},
		{"autoinc ignores type", ColumnDoc{Type: "text", Role: "autoinc"}, "INTEGER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := domain.NewFactory().FromType(Descriptor(tt.col), domain.Options{Identity: "c"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.SQLDataType(ctx))
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tables:\n  - name: t\n    bogus: 1\n"), 0o600))

	_, err := LoadFile(path)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.File)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read schema")
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tables:\n  - name: a\n"), 0o600))

	var (
		mu    sync.Mutex
		names []string
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, testutil.NewTestLogger(t), func(doc *Document, err error) {
			if err != nil || len(doc.Tables) == 0 {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			names = append(names, doc.Tables[0].Name)
		})
	}()

	last := func() string {
		mu.Lock()
		defer mu.Unlock()
		if len(names) == 0 {
			return ""
		}
		return names[len(names)-1]
	}
	require.Eventually(t, func() bool { return last() == "a" }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("tables:\n  - name: b\n"), 0o600))
	require.Eventually(t, func() bool { return last() == "b" }, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
