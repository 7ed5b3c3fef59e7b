package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProgramFixture(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	body := `{
		"stmts": [
			{
				"Kind": 1,
				"VarDef": {
					"Kind": 0,
					"Name": "a",
					"Value": {"Kind": 12, "Literal": {"Kind": 0, "Text": "5"}}
				}
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestFmtCommand_SingleFileNoHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeProgramFixture(t, dir, "a.json")

	cmd := NewFmtCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "-- "+path)
	assert.Contains(t, out.String(), "let a = 5")
}

func TestFmtCommand_MultipleFilesPrintsHeaders(t *testing.T) {
	dir := t.TempDir()
	a := writeProgramFixture(t, dir, "a.json")
	b := writeProgramFixture(t, dir, "b.json")

	cmd := NewFmtCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{a, b})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "-- "+a)
	assert.Contains(t, out.String(), "-- "+b)
}

func TestFmtCommand_MissingFileReturnsError(t *testing.T) {
	cmd := NewFmtCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.json")})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestFmtCommand_NoArgsReturnsError(t *testing.T) {
	cmd := NewFmtCommand()
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	assert.Error(t, err)
}
