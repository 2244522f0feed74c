package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlaide/internal/cli/config"
)

func TestInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string)
		args      []string
		wantErr   bool
		wantFiles []string
	}{
		{
			name:      "init empty directory",
			wantFiles: []string{"sqlaide.yaml", "schema.yaml", ".gitignore"},
		},
		{
			name: "init existing config without force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "sqlaide.yaml"), []byte("existing"), 0600))
			},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "sqlaide.yaml"), []byte("existing"), 0600))
			},
			args:      []string{"--force"},
			wantFiles: []string{"sqlaide.yaml", "schema.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "project")
			require.NoError(t, os.MkdirAll(dir, 0750))
			if tt.setupDir != nil {
				tt.setupDir(t, dir)
			}

			out, _, err := execute(t, NewInitCommand(), config.GetConfig(t.Context()), append([]string{dir}, tt.args...)...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "already exists")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "Next steps")
			for _, f := range tt.wantFiles {
				assert.FileExists(t, filepath.Join(dir, f))
			}
		})
	}
}

func TestInitCommand_ProjectCompiles(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, NewInitCommand(), config.GetConfig(t.Context()), dir)
	require.NoError(t, err)

	cfg, err := config.NewLoader().Load(filepath.Join(dir, "sqlaide.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Target.Type)
	assert.Equal(t, filepath.Join(dir, "app.db"), cfg.Target.Database)
	assert.True(t, cfg.Idempotent)

	cfg.OutputFormat = "text"
	out, _, err := execute(t, NewDDLCommand(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS \"account\"")
	assert.Contains(t, out, "\"display_name\" VARCHAR(255)")

	out, _, err = execute(t, NewApplyCommand(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "applied 5 statement(s)")
}
