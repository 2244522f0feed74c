package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlaide/internal/cli/config"
	clitestutil "github.com/leapstack-labs/sqlaide/internal/cli/testutil"
	"github.com/leapstack-labs/sqlaide/internal/testutil"
	_ "github.com/leapstack-labs/sqlaide/pkg/adapters/sqlite" // register sqlite adapter
	_ "github.com/leapstack-labs/sqlaide/pkg/dialects/mysql"  // register mysql dialect
	_ "github.com/leapstack-labs/sqlaide/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/sqlaide/pkg/lint/rules" // register lint rules
)

// project writes a test project with the given sqlaide.yaml and loads its
// configuration the way the root command does.
func project(t *testing.T, yaml string) (string, *config.Config) {
	t.Helper()
	dir := clitestutil.SetupTestProject(t, yaml)
	cfg, err := config.NewLoader().Load(filepath.Join(dir, "sqlaide.yaml"), nil)
	require.NoError(t, err)
	return dir, cfg
}

// execute runs cmd with cfg and a test logger on its context and returns
// the captured stdout and stderr. Usage and error printing are silenced as
// on the root command.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, testutil.NewTestLogger(t))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}
