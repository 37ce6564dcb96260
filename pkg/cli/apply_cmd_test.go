package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `edits:
  - op: set
    clause: WHERE
    text: id = 1
  - op: append
    clause: SELECT
    text: c
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApplyCmd_Stdin(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	script := writeFile(t, dir, "edits.yaml", testScript)

	out, _, err := runCLI(t, "SELECT a, b FROM t", "apply", "-f", script)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a, b, c FROM t WHERE id = 1\n", out)
}

func TestApplyCmd_Files(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	script := writeFile(t, dir, "edits.yaml", testScript)
	a := writeFile(t, dir, "a.sql", "SELECT a, b FROM t;\n")
	b := writeFile(t, dir, "b.sql", "SELECT x FROM u WHERE id = 9")
	outDir := filepath.Join(dir, "out")

	out, _, err := runCLI(t, "", "apply", "-f", script, "--out-dir", outDir, a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   "+a)
	assert.Contains(t, out, "ok   "+b)

	got, err := os.ReadFile(filepath.Join(outDir, "a.sql"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT a, b, c FROM t WHERE id = 1;\n", string(got))

	got, err = os.ReadFile(filepath.Join(outDir, "b.sql"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT x, c FROM u WHERE id = 1\n", string(got))

	// Sources are untouched.
	src, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a, b FROM t;\n", string(src))
}

func TestApplyCmd_DryRunJSON(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	script := writeFile(t, dir, "edits.yaml", testScript)
	a := writeFile(t, dir, "a.sql", "SELECT a FROM t")
	bad := writeFile(t, dir, "bad.sql", "DELETE FROM t")

	out, _, err := runCLI(t, "", "apply", "-o", "json", "--dry-run", "-f", script, a, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.sql")
	assert.Contains(t, out, `"output": "SELECT a, c FROM t WHERE id = 1"`)
	assert.Contains(t, out, `"error": "edit 1 (append SELECT)`)

	src, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t", string(src))
}

func TestApplyCmd_Errors(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	_, _, err := runCLI(t, "SELECT a FROM t", "apply")
	require.Error(t, err)

	script := writeFile(t, dir, "bad.yaml", "edits:\n  - op: rename\n    clause: WHERE\n")
	_, _, err = runCLI(t, "SELECT a FROM t", "apply", "-f", script)
	require.Error(t, err)
}
