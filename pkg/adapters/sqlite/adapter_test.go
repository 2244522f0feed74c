package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlaide/internal/testutil"
	"github.com/leapstack-labs/sqlaide/pkg/adapter"
	"github.com/leapstack-labs/sqlaide/pkg/domain"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
	"github.com/leapstack-labs/sqlaide/pkg/table"
)

func connect(t *testing.T, cfg adapter.Config) *Adapter {
	t.Helper()
	adp := New(testutil.NewTestLogger(t))
	require.NoError(t, adp.Connect(context.Background(), cfg))
	t.Cleanup(func() { _ = adp.Close() })
	return adp
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"sqlite", "sqlite3"} {
		adp, err := adapter.NewAdapter(adapter.Config{Type: name}, nil)
		require.NoError(t, err, name)
		assert.IsType(t, &Adapter{}, adp)
	}
}

func TestConnect(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(t *testing.T) adapter.Config
	}{
		{"in-memory", func(*testing.T) adapter.Config { return adapter.Config{} }},
		{"file", func(t *testing.T) adapter.Config {
			return adapter.Config{Path: filepath.Join(t.TempDir(), "app.db")}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adp := connect(t, tt.cfg(t))
			assert.True(t, adp.IsConnected())
			require.NoError(t, adp.Exec(context.Background(), "SELECT 1"))
		})
	}
}

// buildSchema declares an account table that belongs to a seeded status
// lookup and references its own manager.
func buildSchema(t *testing.T) (*table.EnumTable, *table.Definition) {
	t.Helper()
	a := table.NewArena(table.WithLogger(testutil.NewTestLogger(t)))
	status, err := table.TextEnumTable(a, "status", table.Options{},
		table.EnumPair{Code: "a", Value: "active"},
		table.EnumPair{Code: "x", Value: "closed"},
	)
	require.NoError(t, err)
	account, err := a.Build("account", table.Shape{
		table.AutoIncPK("account_id"),
		table.UniqueCol("email", domain.VarChar(120)),
		table.FK("status", status.Ref("code")),
		table.FK("manager_id", table.SelfRef("account_id").Optional()),
		table.CreatedAt(),
	}, table.Options{Idempotent: true})
	require.NoError(t, err)
	return status, account
}

func TestApplyRenderedSchema(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, adapter.Config{})
	status, account := buildSchema(t)

	seeds, err := status.SeedStatements()
	require.NoError(t, err)
	insert, err := account.Insert([]table.Row{
		{"email": "a@example.com", "status": "a"},
		{"email": "b@example.com", "status": "x"},
	}, table.InsertOptions{})
	require.NoError(t, err)

	ectx := emit.NewContext(adp.Dialect())
	fragments := []emit.Fragment{status.Definition, account}
	for _, s := range seeds {
		fragments = append(fragments, s)
	}
	fragments = append(fragments, insert)

	n, err := adapter.Apply(ctx, adp, ectx, fragments...)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	meta, err := adp.GetTableMetadata(ctx, "account")
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.RowCount)
	require.Len(t, meta.Columns, 5)
	assert.Equal(t, "account_id", meta.Columns[0].Name)
	assert.False(t, meta.Columns[0].Nullable)
	assert.True(t, meta.Columns[3].Nullable, "manager_id")

	// Idempotent DDL applies twice.
	_, err = adapter.Apply(ctx, adp, ectx, account)
	require.NoError(t, err)

	sel, err := account.Select(table.Criteria{"status": "x"}, table.SelectOptions{Returning: table.ReturnColumns("email")})
	require.NoError(t, err)
	rows, err := adp.Query(ctx, sel.SQL(ectx))
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()
	require.True(t, rows.Next())
	var email string
	require.NoError(t, rows.Scan(&email))
	assert.Equal(t, "b@example.com", email)
}

func TestApply_ForeignKeyViolation(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, adapter.Config{})
	status, account := buildSchema(t)

	insert, err := account.Insert([]table.Row{{"email": "a@example.com", "status": "missing"}}, table.InsertOptions{})
	require.NoError(t, err)

	_, err = adapter.Apply(ctx, adp, emit.NewContext(adp.Dialect()), status.Definition, account, insert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement 3 failed")

	// The batch rolled back, so no table survived.
	_, err = adp.GetTableMetadata(ctx, "status")
	assert.ErrorContains(t, err, "not found")
}

func TestGetTableMetadata_NotConnected(t *testing.T) {
	_, err := New(nil).GetTableMetadata(context.Background(), "t")
	assert.ErrorContains(t, err, "not established")
}
