package dialect

import (
	"errors"
	"testing"
	"time"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		dialect *Dialect
		input   string
		want    string
	}{
		{"ansi plain", ANSI, "users", `"users"`},
		{"ansi embedded quote", ANSI, `we"ird`, `"we""ird"`},
		{"brackets", NewDialect("t").Identifiers("[", "]", "]]", core.NormCaseInsensitive).Build(), "a]b", "[a]]b]"},
		{"backticks", NewDialect("t").Identifiers("`", "`", "``", core.NormCaseSensitive).Build(), "a`b", "`a``b`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.QuoteIdentifier(tt.input))
		})
	}
}

func TestQuoteIdentifierIfNeeded(t *testing.T) {
	assert.Equal(t, "account", ANSI.QuoteIdentifierIfNeeded("account"))
	assert.Equal(t, `"user"`, ANSI.QuoteIdentifierIfNeeded("user"))
	assert.Equal(t, `"ORDER"`, ANSI.QuoteIdentifierIfNeeded("ORDER"))
	assert.Equal(t, `"first name"`, ANSI.QuoteIdentifierIfNeeded("first name"))
	assert.Equal(t, `"1st"`, ANSI.QuoteIdentifierIfNeeded("1st"))
}

func TestQuotedLiteral(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "NULL"},
		{"string", "text", "'text'"},
		{"embedded quote", "O'Brien", "'O''Brien'"},
		{"int", 423, "423"},
		{"int64", int64(-7), "-7"},
		{"uint8", uint8(3), "3"},
		{"float", 1.5, "1.5"},
		{"bool true", true, "TRUE"},
		{"bool false", false, "FALSE"},
		{"timestamp", ts, "'2024-03-09 14:05:07'"},
		{"date", day, "'2024-03-09'"},
		{"bytes", []byte{0xde, 0xad}, "X'DEAD'"},
		{"stringer", stringer("it's"), "'it''s'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, got := ANSI.QuotedLiteral(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, v)
		})
	}
}

func TestQuoteString_BackslashEscapes(t *testing.T) {
	d := NewDialect("t").BackslashEscapes().Build()
	assert.Equal(t, `'a\\b''c'`, d.QuoteString(`a\b'c`))
	assert.Equal(t, `'a\b'`, ANSI.QuoteString(`a\b`))
}

func TestBuilderDefaults(t *testing.T) {
	d := NewDialect("test").Build()

	assert.Equal(t, "test", d.Identity(IdentityPresentation))
	assert.Equal(t, "test", d.Identity(IdentityState))
	assert.Equal(t, core.FamilyANSI, d.Family)
	assert.Equal(t, ";", d.Terminator())
	assert.Empty(t, d.BatchSeparator())
	assert.Equal(t, AutoIncrement{Decoration: "PRIMARY KEY AUTOINCREMENT"}, d.AutoIncrement())
	assert.False(t, d.SupportsReturning())
	assert.False(t, d.SupportsArrays())

	_, ok := d.TypeName(core.DataTypeJSON)
	assert.False(t, ok)
}

func TestBuilderOverrides(t *testing.T) {
	d := NewDialect("test").
		Presentation("Test DB").
		Family(core.FamilyEnterprise).
		TypeName(core.DataTypeBoolean, "BIT").
		AutoIncrement("SERIAL", "PRIMARY KEY").
		BooleanLiterals("0", "1").
		BatchSeparator("GO").
		Returning().
		Arrays().
		Build()

	assert.Equal(t, "Test DB", d.Identity(IdentityPresentation))
	assert.Equal(t, "test", d.Identity(IdentityState))
	assert.True(t, d.IsEnterprise())
	assert.False(t, d.IsClientServer())
	name, ok := d.TypeName(core.DataTypeBoolean)
	assert.True(t, ok)
	assert.Equal(t, "BIT", name)
	assert.Equal(t, "SERIAL", d.AutoIncrement().TypeName)
	assert.Equal(t, "1", d.BooleanLiteral(true))
	assert.Equal(t, "GO", d.BatchSeparator())
	assert.True(t, d.SupportsReturning())
	assert.True(t, d.SupportsArrays())
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		norm core.NormalizationStrategy
		want string
	}{
		{core.NormLowercase, "account"},
		{core.NormUppercase, "ACCOUNT"},
		{core.NormCaseInsensitive, "account"},
		{core.NormCaseSensitive, "AcCount"},
	}
	for _, tt := range tests {
		d := NewDialect("t").Identifiers(`"`, `"`, `""`, tt.norm).Build()
		assert.Equal(t, tt.want, d.NormalizeName("AcCount"))
	}
}

func TestFormatPlaceholder(t *testing.T) {
	assert.Equal(t, "?", NewDialect("q").Build().FormatPlaceholder(2))
	assert.Equal(t, "$2", NewDialect("d").PlaceholderStyle(core.PlaceholderDollar).Build().FormatPlaceholder(2))
	assert.Equal(t, "@p2", NewDialect("p").PlaceholderStyle(core.PlaceholderAtP).Build().FormatPlaceholder(2))
}

func TestRegistry(t *testing.T) {
	d := NewDialect("registrytest").Aliases("RegTest").Build()
	Register(d)

	got, ok := Get("REGISTRYTEST")
	require.True(t, ok)
	assert.Same(t, d, got)

	got, ok = Get("regtest")
	require.True(t, ok)
	assert.Same(t, d, got)

	assert.Contains(t, List(), "registrytest")
	assert.Contains(t, List(), "ansi")
	assert.NotContains(t, List(), "regtest")
	assert.Same(t, ANSI, Default())
}

func TestLookup(t *testing.T) {
	d, err := Lookup("ansi")
	require.NoError(t, err)
	assert.Same(t, ANSI, d)

	_, err = Lookup("")
	assert.ErrorIs(t, err, ErrDialectRequired)

	_, err = Lookup("oracle")
	var unknown *UnknownDialectError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "oracle", unknown.Name)
	assert.Contains(t, unknown.Available, "ansi")
	assert.Contains(t, err.Error(), `unknown dialect "oracle"`)
}
