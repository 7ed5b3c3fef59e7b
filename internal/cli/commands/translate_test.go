package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExprFixture(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestTranslateCommand_RendersOperatorCall(t *testing.T) {
	dir := t.TempDir()
	path := writeExprFixture(t, dir, "expr.json", `{
		"Kind": 0,
		"Name": "std.add",
		"Args": [
			{"Kind": 1, "Column": "x"},
			{"Kind": 2, "Literal": {"Kind": 0, "Text": "1"}}
		]
	}`)

	cmd := NewTranslateCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dialect", "generic", path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "x")
}

func TestTranslateCommand_UnknownOperatorReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := writeExprFixture(t, dir, "expr.json", `{"Kind": 0, "Name": "std.frobnicate", "Args": []}`)

	cmd := NewTranslateCommand()
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--dialect", "generic", path})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	assert.Error(t, err)
	assert.NotEmpty(t, errOut.String())
}

func TestTranslateCommand_MalformedJSONReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := writeExprFixture(t, dir, "expr.json", `not json`)

	cmd := NewTranslateCommand()
	cmd.SetArgs([]string{path})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	assert.Error(t, err)
}
