package emit

import (
	"testing"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
	"github.com/stretchr/testify/assert"
)

var embedded = dialect.NewDialect("embedded").Family(core.FamilyEmbedded).Build()

func TestRender(t *testing.T) {
	ctx := NewContext(nil)

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"string is verbatim", "it's", "it's"},
		{"text", Text("SELECT 1"), "SELECT 1"},
		{"func", Func(func(c *Context) string { return c.Dialect.Name }), "ansi"},
		{"slice", []Fragment{Text("a"), Text("b")}, "a\nb"},
		{"nested", []any{Text("a"), []any{"b", Text("c")}}, "a\nb\nc"},
		{"int", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(ctx, tt.input))
		})
	}
}

func TestComposition(t *testing.T) {
	ctx := NewContext(nil)

	assert.Equal(t, `"a", "b"`, List(ColumnName("a"), ColumnName("b")).SQL(ctx))
	assert.Equal(t, "a AND b", Join(" AND ", "a", "", []any{Text("b")}).SQL(ctx))
	assert.Equal(t, "(1, 'x')", Parens(List(Literal(1), Literal("x"))).SQL(ctx))
	assert.Equal(t, `DROP TABLE "t"`, Sprintf("DROP TABLE %s", TableName("t")).SQL(ctx))

	ns := NewContext(nil, WithNamespace("app"))
	assert.Equal(t, `"app"."t"`, TableName("t").SQL(ns))

	bare := NewContext(nil, WithoutQuotedIdentifiers())
	assert.Equal(t, "t", TableName("t").SQL(bare))
}

func TestSequence(t *testing.T) {
	ctx := NewContext(nil)
	seq := Sequence(
		Pragma("foreign_keys = ON"),
		Comment("schema"),
		Stmt(Text("CREATE TABLE a (x INTEGER)")),
		[]Statement{Stmt(Text("SELECT 1")), Stmt(Text("SELECT 2;"))},
		Text("plain"),
		Batch(),
	)

	want := "-- PRAGMA foreign_keys = ON skipped for ANSI\n" +
		"-- schema\n" +
		"CREATE TABLE a (x INTEGER);\n" +
		"SELECT 1;\n" +
		"SELECT 2;\n" +
		"plain"
	assert.Equal(t, want, seq.SQL(ctx))

	assert.Equal(t, "PRAGMA foreign_keys = ON;", Pragma("foreign_keys = ON").SQL(NewContext(embedded)))
}

func TestSequence_Deterministic(t *testing.T) {
	seq := Sequence(Stmt(Text("SELECT 1")), Comment("x"))
	ctx := NewContext(nil)
	assert.Equal(t, seq.SQL(ctx), seq.SQL(ctx))
}

func TestStmt_Idempotent(t *testing.T) {
	s := Stmt(Text("x"))
	assert.Equal(t, s, Stmt(s))
}

func TestTextOptions(t *testing.T) {
	opts := DefaultTextOptions()
	assert.Equal(t, "", opts.Indent(PurposeCreateTable))
	assert.Equal(t, "    ", opts.Indent(PurposeColumn))
	assert.Equal(t, "  ", opts.Indent(PurposeRoutineBody))
	assert.Equal(t, "    a\n\n    b", opts.Indentation(PurposeColumn, "a\n\nb"))
	assert.Equal(t, "  -- one\n  -- two", opts.Comments("one\ntwo", "  "))

	tabbed := opts.WithIndent(PurposeColumn, "\t")
	assert.Equal(t, "\t", tabbed.Indent(PurposeColumn))
	assert.Equal(t, "    ", opts.Indent(PurposeColumn))

	ctx := NewContext(nil, WithIndent(PurposeColumn, "  "))
	assert.Equal(t, "  ", ctx.Text.Indent(PurposeColumn))
}

func TestPrinter(t *testing.T) {
	p := NewPrinter("    ")
	p.Write("CREATE TABLE t (")
	p.Writeln()
	p.Indent()
	items := []string{"a", "b", "c"}
	p.FormatList(len(items), func(i int) { p.Write(items[i]) }, ",", true)
	p.Dedent()
	p.Dedent()
	p.Writeln()
	p.Write(")")
	p.Writeln()

	assert.Equal(t, "CREATE TABLE t (\n    a,\n    b,\n    c\n)", p.String())
}

func TestLintSummary(t *testing.T) {
	ctx := NewContext(nil)
	var sink lint.Issues
	assert.Equal(t, "-- no SQL lint issues", LintSummary(&sink).SQL(ctx))

	long := "table a_really_long_table_name_that_keeps_going_and_going definition"
	sink.RegisterLintIssue(
		lint.Issue{RuleID: "TB01", Message: "plural", Consequence: core.ConventionDDL, Location: lint.At("table users")},
		lint.Issue{RuleID: "TB02", Message: "no pk", Consequence: core.WarningDDL, Location: lint.At(long)},
		lint.Issue{RuleID: "TB99", Message: "plural", Consequence: core.ConventionDDL, Location: lint.At("table users")},
		lint.Issue{Message: "bare", Consequence: core.InformationalDDL},
	)

	want := "-- [Convention (DDL)] plural (table users)\n" +
		"-- [DDL Warning] no pk (" + long[:50] + ")\n" +
		"-- [Informational (DDL)] bare"
	assert.Equal(t, want, LintSummary(&sink).SQL(ctx))

	_, isStatement := LintSummary(&sink).(Statement)
	assert.False(t, isStatement)
}

func TestContext_NamingStrategyOverride(t *testing.T) {
	ctx := NewContext(nil, WithNamespace("app"))
	s := ctx.NamingStrategy()
	assert.Equal(t, `"app"."t"`, s.TableName("t"))

	v, lit := ctx.QuotedLiteral("x")
	assert.Equal(t, "x", v)
	assert.Equal(t, "'x'", lit)
}
