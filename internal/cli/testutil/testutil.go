// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlaide/internal/cli/output"
)

// Schema is a small schema document exercising enums, forward references
// and self references.
const Schema = `enums:
  - {name: status, kind: ordinal, values: [active, inactive]}
tables:
  - name: membership
    columns:
      - {name: membership_id, type: integer, role: autoinc}
      - {name: account_id, references: {table: account, column: account_id, nature: belongs_to}}
  - name: account
    columns:
      - {name: account_id, type: integer, role: autoinc}
      - {name: email, type: varchar, max: 120, role: unique}
      - {name: status, references: {table: status, column: code}}
      - {name: manager_id, optional: true, references: {table: account, column: account_id}}
`

// SetupTestProject creates a temporary project holding sqlaide.yaml and
// schema.yaml and returns its directory. An empty config writes an empty
// sqlaide.yaml.
func SetupTestProject(t *testing.T, config string) string {
	t.Helper()

	dir := t.TempDir()
	WriteFile(t, filepath.Join(dir, "sqlaide.yaml"), config)
	WriteFile(t, filepath.Join(dir, "schema.yaml"), Schema)
	return dir
}

// WriteFile writes content to path, failing the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
