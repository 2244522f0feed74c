package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/leapstack-labs/sqlaide/internal/testutil"
	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ansiCtx       = emit.NewContext(dialect.ANSI)
	clientServer  = dialect.NewDialect("cs").Family(core.FamilyClientServer).TypeName(core.DataTypeJSON, "JSONB").Arrays().Build()
	enterprise    = dialect.NewDialect("ent").Family(core.FamilyEnterprise).TypeName(core.DataTypeBoolean, "BIT").BooleanLiterals("0", "1").Build()
	csCtx         = emit.NewContext(clientServer)
	enterpriseCtx = emit.NewContext(enterprise)
)

func mustDomain(t *testing.T, desc Descriptor) *Domain {
	t.Helper()
	d, err := NewFactory().FromType(desc, Options{Identity: "col"})
	require.NoError(t, err)
	return d
}

func TestSQLDataType(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
		ctx  *emit.Context
		want string
	}{
		{"text", Text(), ansiCtx, "TEXT"},
		{"integer", Integer(), ansiCtx, "INTEGER"},
		{"bigint", BigInt(), ansiCtx, "BIGINT"},
		{"float", Float(), ansiCtx, "REAL"},
		{"date", Date(), ansiCtx, "DATE"},
		{"datetime", DateTime(), ansiCtx, "DATETIME"},
		{"boolean", Boolean(), ansiCtx, "BOOLEAN"},
		{"boolean enterprise", Boolean(), enterpriseCtx, "BIT"},
		{"json", JSON(), ansiCtx, "JSON"},
		{"json override", JSON(), csCtx, "JSONB"},
		{"native enum", NativeEnum("a", "b"), ansiCtx, "INTEGER"},
		{"text enum", TextEnum("a"), ansiCtx, "TEXT"},
		{"bigfloat ansi", BigFloat(), ansiCtx, "REAL"},
		{"bigfloat client server", BigFloat(), csCtx, "FLOAT"},
		{"bigfloat enterprise", BigFloat(), enterpriseCtx, "DOUBLE PRECISION"},
		{"varchar max", VarChar(40), ansiCtx, "VARCHAR(40)"},
		{"varchar modifier", VarChar(0).Max(12), ansiCtx, "VARCHAR(12)"},
		{"varchar default", VarChar(0), ansiCtx, "VARCHAR(255)"},
		{"nvarchar max", VarChar(40), enterpriseCtx, "NVARCHAR(40)"},
		{"nvarchar default", VarChar(0), enterpriseCtx, "NVARCHAR(MAX)"},
		{"array native", ArrayOf(Integer()), csCtx, "INTEGER[]"},
		{"array fallback", ArrayOf(Integer()), ansiCtx, "JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDomain(t, tt.desc)
			assert.Equal(t, tt.want, d.SQLDataType(tt.ctx))
			assert.Equal(t, tt.want, d.DataType().SQL(tt.ctx))
		})
	}
}

func TestNullableKeepsBaseType(t *testing.T) {
	for _, desc := range []Descriptor{Text().Optional(), Text().Nullable(), Text().Default("x"), Text().DefaultSQL("''")} {
		d := mustDomain(t, desc)
		assert.True(t, d.IsNullable())
		assert.Equal(t, "TEXT", d.SQLDataType(ansiCtx))
	}
	assert.False(t, mustDomain(t, Text()).IsNullable())
	assert.False(t, Text().Optional().Required().IsNullable())
}

func TestVarcharDefaultLengthOption(t *testing.T) {
	d, err := NewFactory(WithVarcharDefaultLength(64)).FromType(VarChar(0), Options{})
	require.NoError(t, err)
	assert.Equal(t, "VARCHAR(64)", d.SQLDataType(ansiCtx))
	n, declared := d.VarcharLength()
	assert.Equal(t, 64, n)
	assert.False(t, declared)
}

func TestSQLDefaultValue(t *testing.T) {
	d := mustDomain(t, DateTime().DefaultSQL("CURRENT_TIMESTAMP"))
	got, ok := d.SQLDefaultValue(ansiCtx)
	require.True(t, ok)
	assert.Equal(t, "CURRENT_TIMESTAMP", got)

	d = mustDomain(t, Text().Default("it's"))
	got, ok = d.SQLDefaultValue(ansiCtx)
	require.True(t, ok)
	assert.Equal(t, "'it''s'", got)

	d = mustDomain(t, Text().DefaultFunc(func() any { return "generated" }))
	_, ok = d.SQLDefaultValue(ansiCtx)
	assert.False(t, ok)
	v, ok := d.CallerDefault()
	require.True(t, ok)
	assert.Equal(t, "generated", v)

	_, ok = mustDomain(t, Text()).SQLDefaultValue(ansiCtx)
	assert.False(t, ok)
}

func TestLiteral(t *testing.T) {
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		desc  Descriptor
		ctx   *emit.Context
		value any
		want  string
	}{
		{"nil", Text(), ansiCtx, nil, "NULL"},
		{"text", Text(), ansiCtx, "a'b", "'a''b'"},
		{"integer", Integer(), ansiCtx, 423, "423"},
		{"json object", JSON(), ansiCtx, map[string]int{"a": 1}, `'{"a":1}'`},
		{"json string passthrough", JSON(), ansiCtx, `{"a":1}`, `'{"a":1}'`},
		{"native enum by name", NativeEnum("active", "inactive"), ansiCtx, "inactive", "1"},
		{"native enum by ordinal", NativeEnum("active"), ansiCtx, 0, "0"},
		{"date", Date(), ansiCtx, ts, "'2024-01-02'"},
		{"datetime midnight", DateTime(), ansiCtx, ts, "'2024-01-02 00:00:00'"},
		{"boolean", Boolean(), ansiCtx, true, "TRUE"},
		{"boolean enterprise", Boolean(), enterpriseCtx, true, "1"},
		{"array native", ArrayOf(Text()), csCtx, []string{"a", "b"}, "ARRAY['a', 'b']"},
		{"array json", ArrayOf(Text()), ansiCtx, []string{"a"}, `'["a"]'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDomain(t, tt.desc)
			assert.Equal(t, tt.want, d.Literal(tt.ctx, PurposeInsert, tt.value))
			assert.Equal(t, tt.want, d.LiteralFragment(PurposeSelect, tt.value).SQL(tt.ctx))
		})
	}
}

func TestBind(t *testing.T) {
	d, err := NewFactory().FromType(Text(), Options{})
	require.NoError(t, err)
	assert.Equal(t, NotBound, d.Identity())
	assert.False(t, d.IsBound())

	require.NoError(t, d.Bind("name"))
	assert.True(t, d.IsBound())
	require.NoError(t, d.Bind("name"))

	err = d.Bind("other")
	assert.ErrorIs(t, err, ErrIdentityBound)
	assert.Equal(t, "name", d.Identity())

	assert.ErrorIs(t, d.Bind(NotBound), ErrInvalidIdentity)
	assert.ErrorIs(t, d.Bind(""), ErrInvalidIdentity)
}

func TestFromType_Unmapped(t *testing.T) {
	_, err := NewFactory().FromType(Parse("geometry"), Options{Identity: "shape"})
	var unmapped *UnmappedTypeError
	require.True(t, errors.As(err, &unmapped))
	assert.Equal(t, "geometry", unmapped.TypeName)
	assert.EqualError(t, err, "unable to map shape type geometry to SQL domain")

	_, err = NewFactory().FromType(ArrayOf(Parse("blob2")), Options{Identity: "xs"})
	assert.ErrorAs(t, err, &unmapped)
	assert.Contains(t, err.Error(), "array element")
}

func TestParse(t *testing.T) {
	assert.Equal(t, core.DataTypeDateTime, Parse("timestamp").Kind())
	assert.Equal(t, "timestamp", Parse("timestamp").TypeName())
	assert.Equal(t, "text", Text().TypeName())
}

func TestCacheableFrom(t *testing.T) {
	f := NewFactory(WithLogger(testutil.NewTestLogger(t)))
	cached, err := f.FromType(Text(), Options{Identity: "a"})
	require.NoError(t, err)

	got, err := f.CacheableFrom(Text(), cached, Options{Identity: "b"})
	require.NoError(t, err)
	assert.Same(t, cached, got)

	fresh, err := f.CacheableFrom(Text(), cached, Options{Identity: "b", ForceCreate: true})
	require.NoError(t, err)
	assert.NotSame(t, cached, fresh)
	assert.Equal(t, "b", fresh.Identity())

	built, err := f.CacheableFrom(Integer(), nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, core.DataTypeInteger, built.Kind())
}

func TestDescribe(t *testing.T) {
	type raw struct{ Name string }
	r := raw{Name: "email"}

	described, err := Describe(NewFactory(), r, VarChar(120), Options{Identity: r.Name})
	require.NoError(t, err)
	assert.Equal(t, r, described.Raw)
	assert.Equal(t, "email", described.Domain.Identity())

	_, err = Describe(NewFactory(), r, Parse("nope"), Options{})
	assert.Error(t, err)
}

func TestEnumIssues(t *testing.T) {
	d := mustDomain(t, NativeEnum())
	issues := d.LintIssues()
	require.Len(t, issues, 1)
	assert.Equal(t, "enum domain declares no values", issues[0].Message)
	assert.Equal(t, "domain col", issues[0].Where(0))

	d = mustDomain(t, TextEnum("a", "b", "a"))
	require.Len(t, d.LintIssues(), 1)
	assert.Contains(t, d.LintIssues()[0].Message, "repeats value 'a'")

	assert.Zero(t, mustDomain(t, TextEnum("a")).Len())
}

func TestDescriptorImmutable(t *testing.T) {
	base := Text()
	_ = base.Optional().Default("x")
	assert.False(t, base.IsNullable())
	assert.False(t, base.HasDefault())

	withDefault := Integer().Default(1).DefaultSQL("1")
	assert.False(t, withDefault.WithoutDefault().HasDefault())

	values := []string{"a"}
	e := TextEnum(values...)
	values[0] = "z"
	assert.Equal(t, []string{"a"}, e.EnumValues())
}
