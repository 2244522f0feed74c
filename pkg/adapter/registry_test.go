package adapter

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

func TestUnknownAdapterError_Error(t *testing.T) {
	err := &UnknownAdapterError{
		Type:      "fake_db",
		Available: []string{"duckdb", "postgres"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "fake_db")
	assert.Contains(t, msg, "sqlaide.yaml")
}

func TestRegister(t *testing.T) {
	Register("Test_Adapter_Internal", func(_ *slog.Logger) Adapter { return nil })

	assert.True(t, IsRegistered("test_adapter_internal"))
	factory, ok := Get("TEST_ADAPTER_INTERNAL")
	assert.True(t, ok)
	assert.NotNil(t, factory)
	assert.Contains(t, ListAdapters(), "test_adapter_internal")
}

func TestGet_DialectAlias(t *testing.T) {
	dialect.Register(dialect.NewDialect("aliased_db").Aliases("adb").Build())
	Register("aliased_db", func(_ *slog.Logger) Adapter { return nil })

	_, ok := Get("adb")
	assert.True(t, ok)
}

func TestNewAdapter_Errors(t *testing.T) {
	_, err := NewAdapter(Config{}, nil)
	require.Error(t, err)
	assert.Equal(t, "adapter type not specified", err.Error())

	_, err = NewAdapter(Config{Type: "nope"}, nil)
	var unknown *UnknownAdapterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Type)
}
