package mssql

import (
	"context"
	"testing"

	"github.com/microsoft/go-mssqldb/msdsn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlaide/pkg/adapter"
)

func TestBuildMSSQLDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  adapter.Config
		want string
	}{
		{
			name: "defaults",
			cfg:  adapter.Config{Database: "app"},
			want: "sqlserver://localhost:1433?database=app",
		},
		{
			name: "credentials and options",
			cfg: adapter.Config{
				Host: "db", Port: 14330, Database: "app", Username: "sa", Password: "p@ss",
				Options: map[string]string{"encrypt": "disable"},
			},
			want: "sqlserver://sa:p%40ss@db:14330?database=app&encrypt=disable",
		},
		{
			name: "dsn",
			cfg:  adapter.Config{DSN: "sqlserver://u:p@h:1?database=x"},
			want: "sqlserver://u:p@h:1?database=x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildMSSQLDSN(tt.cfg)
			assert.Equal(t, tt.want, got)

			_, err := msdsn.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestAdapter_Registry(t *testing.T) {
	for _, name := range []string{"mssql", "sqlserver", "tsql"} {
		adp, err := adapter.NewAdapter(adapter.Config{Type: name}, nil)
		require.NoError(t, err, name)
		assert.IsType(t, &Adapter{}, adp)
		assert.Equal(t, "GO", adp.Dialect().BatchSeparator())
	}
}

func TestAdapter_NotConnected(t *testing.T) {
	adp := New(nil)
	assert.Error(t, adp.Exec(context.Background(), "SELECT 1"))
	assert.NoError(t, adp.Close())
}
