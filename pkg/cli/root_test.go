package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleNetlist = `
INPUT(a)
INPUT(b)
INPUT(c)
A = and(a, b)
B = or(A, c)
TOP(B)
`

func writeNetlist(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "example.net")
	require.NoError(t, os.WriteFile(path, []byte(exampleNetlist), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvalCommand(t *testing.T) {
	path := writeNetlist(t)

	out, err := runCommand(t, "eval", "--circuit", path, "--inputs", "a=1,b=1,c=1")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCommand(t, "eval", "--circuit", path,
		"--inputs", "a=1,b=1,c=1", "--faults", "B")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestDiagnoseCommandMinimal(t *testing.T) {
	path := writeNetlist(t)

	out, err := runCommand(t, "diagnose", "--circuit", path,
		"--inputs", "a=1,b=1,c=1", "--expect=false")
	require.NoError(t, err)
	assert.Equal(t, "{B}\n", out)
}

func TestDiagnoseCommandAll(t *testing.T) {
	path := writeNetlist(t)

	out, err := runCommand(t, "diagnose", "--circuit", path,
		"--inputs", "a=1,b=1,c=1", "--expect=false", "--all")
	require.NoError(t, err)
	assert.Equal(t, "{B}\n{A, B}\n", out)
}

func TestDiagnoseCommandJSON(t *testing.T) {
	path := writeNetlist(t)

	out, err := runCommand(t, "diagnose", "--circuit", path,
		"--inputs", "a=1,b=1,c=1", "--expect=false", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[["B"]]`, out)
}

func TestDiagnoseCommandWorkers(t *testing.T) {
	path := writeNetlist(t)

	out, err := runCommand(t, "diagnose", "--circuit", path,
		"--inputs", "a=1,b=1,c=1", "--expect=false", "--workers", "4")
	require.NoError(t, err)
	assert.Equal(t, "{B}\n", out)
}

func TestExportCommand(t *testing.T) {
	path := writeNetlist(t)

	out, err := runCommand(t, "export", "--circuit", path)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		["A","c","or","B",false,null],
		["a","b","and","A",false,null]
	]`, out)
}

func TestCheckCommandRoundTrip(t *testing.T) {
	path := writeNetlist(t)
	recordsPath := filepath.Join(t.TempDir(), "records.json")

	_, err := runCommand(t, "export", "--circuit", path, "--out", recordsPath)
	require.NoError(t, err)

	out, err := runCommand(t, "check", "--records", recordsPath,
		"--inputs", "a=1,b=1,c=1", "--faults", "B")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestRootCommandRejectsBadFormat(t *testing.T) {
	path := writeNetlist(t)

	_, err := runCommand(t, "eval", "--circuit", path,
		"--inputs", "a=1,b=1,c=1", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestEvalCommandBadCircuit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.net")
	require.NoError(t, os.WriteFile(path, []byte("INPUT(a)\n"), 0o644))

	_, err := runCommand(t, "eval", "--circuit", path, "--inputs", "a=1")
	require.Error(t, err)
}
