package duckdb

import (
	"context"
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
	for _, name := range []string{"duckdb", "duck"} {
		assert.True(t, adapter.IsRegistered(name), name)
	}
}

func TestAdapter_NotConnected(t *testing.T) {
	adp := New(nil)
	assert.Error(t, adp.Exec(context.Background(), "SELECT 1"))
	assert.NoError(t, adp.Close())
}

func TestConnect_WithSettings(t *testing.T) {
	adp := connect(t, adapter.Config{
		Params: map[string]any{"settings": map[string]any{"threads": "2"}},
	})

	rows, err := adp.Query(context.Background(), "SELECT current_setting('threads')")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()
	require.True(t, rows.Next())

	var threads string
	require.NoError(t, rows.Scan(&threads))
	assert.Equal(t, "2", threads)
}

func TestApplyRenderedSchema(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, adapter.Config{Path: ":memory:"})

	a := table.NewArena()
	status, err := table.TextEnumTable(a, "status", table.Options{},
		table.EnumPair{Code: "a", Value: "active"},
		table.EnumPair{Code: "x", Value: "closed"},
	)
	require.NoError(t, err)
	account, err := a.Build("account", table.Shape{
		table.PK("account_id", domain.Integer()),
		table.Col("email", domain.VarChar(120)),
		table.FK("status", status.Ref("code")),
	}, table.Options{})
	require.NoError(t, err)

	seeds, err := status.SeedStatements()
	require.NoError(t, err)

	ectx := emit.NewContext(adp.Dialect())
	fragments := []emit.Fragment{status.Definition, account}
	for _, s := range seeds {
		fragments = append(fragments, s)
	}
	n, err := adapter.Apply(ctx, adp, ectx, fragments...)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	meta, err := adp.GetTableMetadata(ctx, "status")
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.RowCount)

	meta, err = adp.GetTableMetadata(ctx, "account")
	require.NoError(t, err)
	require.Len(t, meta.Columns, 3)
	assert.Equal(t, "email", meta.Columns[1].Name)
}
