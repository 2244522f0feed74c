package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlaide/pkg/emit"
	"github.com/leapstack-labs/sqlaide/pkg/table"
)

func TestTextEnumTable(t *testing.T) {
	ctx := emit.NewContext(nil)
	a := newArena(t)
	enum, err := table.TextEnumTable(a, "t", table.Options{},
		table.EnumPair{Code: "0", Value: "code0"},
		table.EnumPair{Code: "1", Value: "code1"},
	)
	require.NoError(t, err)

	assert.Equal(t, "CREATE TABLE \"t\" (\n"+
		"    \"code\" TEXT PRIMARY KEY,\n"+
		"    \"value\" TEXT NOT NULL,\n"+
		"    \"created_at\" DATETIME DEFAULT CURRENT_TIMESTAMP\n"+
		")", enum.SQL(ctx))

	seed, err := enum.SeedDML()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO \"t\" (\"code\", \"value\") VALUES ('0', 'code0');\n"+
			"INSERT INTO \"t\" (\"code\", \"value\") VALUES ('1', 'code1');",
		seed.SQL(ctx))
}

func TestOrdinalEnumTable(t *testing.T) {
	ctx := emit.NewContext(nil)
	a := newArena(t)
	enum, err := table.OrdinalEnumTable(a, "t", table.Options{}, "code0", "code1")
	require.NoError(t, err)

	assert.Contains(t, enum.SQL(ctx), "\"code\" INTEGER PRIMARY KEY,")
	assert.Len(t, enum.Rows(), 2)

	seed, err := enum.SeedDML()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO \"t\" (\"code\", \"value\") VALUES (0, 'code0');\n"+
			"INSERT INTO \"t\" (\"code\", \"value\") VALUES (1, 'code1');",
		seed.SQL(ctx))
}

func TestEnumTable_EmptySeed(t *testing.T) {
	enum, err := table.OrdinalEnumTable(newArena(t), "t", table.Options{})
	require.NoError(t, err)

	seed, err := enum.SeedDML()
	require.NoError(t, err)
	assert.Equal(t, "-- no t seed rows", seed.SQL(emit.NewContext(nil)))
	assert.Equal(t, "-- no t seed rows", emit.Sequence(seed).SQL(emit.NewContext(nil)))
}

func TestEnumTable_SeedStatements(t *testing.T) {
	ctx := emit.NewContext(nil)
	enum, err := table.OrdinalEnumTable(newArena(t), "t", table.Options{}, "a", "b", "c")
	require.NoError(t, err)

	stmts, err := enum.SeedStatements()
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	assert.Equal(t, "INSERT INTO \"t\" (\"code\", \"value\") VALUES (2, 'c')", stmts[2].SQL(ctx))
}
