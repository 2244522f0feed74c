package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitestutil "github.com/leapstack-labs/sqlaide/internal/cli/testutil"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"version", "init", "ddl", "seed", "lint", "rules", "dialects", "apply", "migrate", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRoot_Version(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlaide v"+Version)
	for _, name := range []string{"duckdb", "mssql", "mysql", "postgres", "sqlite"} {
		assert.Contains(t, out, name)
	}
}

func TestRoot_DDLWithFlags(t *testing.T) {
	dir := clitestutil.SetupTestProject(t, "output: text\ndialect: postgres\n")
	cfgFile := filepath.Join(dir, "sqlaide.yaml")

	out, _, err := run(t, "--config", cfgFile, "ddl", "--namespace", "app", "--idempotent")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS \"app\".\"account\"")
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS \"app\".\"status\"")
	assert.Contains(t, out, "REFERENCES \"app\".\"status\"(\"code\")")
	assert.NotContains(t, out, "CREATE TABLE \"status\"")
	assert.Contains(t, out, "\"account_id\" SERIAL PRIMARY KEY")
}

func TestRoot_EnvOverride(t *testing.T) {
	dir := clitestutil.SetupTestProject(t, "output: text\n")
	t.Setenv("SQLAIDE_DIALECT", "mysql")

	out, _, err := run(t, "--config", filepath.Join(dir, "sqlaide.yaml"), "ddl")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE `account`")
}

func TestRoot_SchemaFlagIsRelativeToWorkingDir(t *testing.T) {
	dir := clitestutil.SetupTestProject(t, "output: text\n")
	other := filepath.Join(t.TempDir(), "other.yaml")
	clitestutil.WriteFile(t, other, "tables:\n  - name: item\n    columns:\n      - {name: item_id, type: integer, role: pk}\n")
	t.Chdir(filepath.Dir(other))

	out, _, err := run(t, "--config", filepath.Join(dir, "sqlaide.yaml"), "--schema", "other.yaml", "ddl")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE \"item\"")
	assert.NotContains(t, out, "account")
}

func TestRoot_InvalidConfig(t *testing.T) {
	dir := clitestutil.SetupTestProject(t, "dialect: oracle\n")
	_, _, err := run(t, "--config", filepath.Join(dir, "sqlaide.yaml"), "ddl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	dir := clitestutil.SetupTestProject(t, "output: text\n")
	_, errOut, err := run(t, "--config", filepath.Join(dir, "sqlaide.yaml"), "-v", "ddl")
	require.NoError(t, err)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "schema compiled")
}

func TestRoot_InitSkipsConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sqlaide.yaml"), []byte("dialect: oracle\n"), 0600))
	t.Chdir(dir)

	_, _, err := run(t, "init", "fresh")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "fresh", "schema.yaml"))
}
