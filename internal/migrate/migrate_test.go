package migrate

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/sqlaide/internal/testutil"
	"github.com/leapstack-labs/sqlaide/pkg/dialects/duckdb"
	"github.com/leapstack-labs/sqlaide/pkg/dialects/sqlite"
)

var at = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

func TestMigration_File(t *testing.T) {
	m := New(at, "Init Schema!", []string{`CREATE TABLE "t" ("id" INTEGER)`}, []string{`DROP TABLE "t";`})

	assert.Equal(t, int64(20260301123000), m.Version)
	assert.Equal(t, "20260301123000_init_schema.sql", m.Filename())
	assert.Equal(t, "-- sqlaide checksum: "+m.Checksum()+"\n\n"+
		"-- +goose Up\n"+
		"-- +goose StatementBegin\n"+
		"CREATE TABLE \"t\" (\"id\" INTEGER);\n"+
		"-- +goose StatementEnd\n"+
		"\n"+
		"-- +goose Down\n"+
		"-- +goose StatementBegin\n"+
		"DROP TABLE \"t\";\n"+
		"-- +goose StatementEnd\n", string(m.Bytes()))
}

func TestChecksum(t *testing.T) {
	a := Checksum([]string{"CREATE TABLE a", "CREATE TABLE b"})
	assert.Len(t, a, 16)
	assert.Equal(t, a, Checksum([]string{"CREATE TABLE a", "CREATE TABLE b"}))
	assert.NotEqual(t, a, Checksum([]string{"CREATE TABLE aCREATE TABLE b"}))
	assert.NotEqual(t, a, Checksum([]string{"CREATE TABLE b", "CREATE TABLE a"}))
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")
	up := []string{"CREATE TABLE a (x INTEGER)"}

	latest, err := LatestChecksum(dir)
	require.NoError(t, err)
	assert.Empty(t, latest)

	path, err := Write(dir, New(at, "init", up, nil))
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = Write(dir, New(at.Add(time.Minute), "again", up, nil))
	assert.ErrorIs(t, err, ErrUnchanged)

	path, err = Write(dir, New(at.Add(time.Minute), "add b", append(up, "CREATE TABLE b (y INTEGER)"), nil))
	require.NoError(t, err)
	assert.Equal(t, "20260301123100_add_b.sql", filepath.Base(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestUp_SQLite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	_, err := Write(dir, New(at, "init",
		[]string{
			"CREATE TABLE \"status\" (\n    \"code\" TEXT PRIMARY KEY,\n    \"value\" TEXT NOT NULL\n)",
			"INSERT INTO \"status\" (\"code\", \"value\") VALUES ('a', 'it''s; active')",
		},
		[]string{`DROP TABLE IF EXISTS "status"`},
	))
	require.NoError(t, err)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	n, err := Up(ctx, db, sqlite.SQLite, dir, testutil.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	version, err := Version(ctx, db, sqlite.SQLite, dir)
	require.NoError(t, err)
	assert.Equal(t, int64(20260301123000), version)

	var value string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT "value" FROM "status"`).Scan(&value))
	assert.Equal(t, "it's; active", value)

	n, err = Up(ctx, db, sqlite.SQLite, dir, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	statuses, err := Status(ctx, db, sqlite.SQLite, dir)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "20260301123000_init.sql", statuses[0].File)
	assert.True(t, statuses[0].Applied)
}

func TestUp_UnsupportedDialect(t *testing.T) {
	_, err := Up(context.Background(), nil, duckdb.DuckDB, t.TempDir(), nil)
	var unsupported *UnsupportedDialectError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "duckdb", unsupported.Dialect)
}
