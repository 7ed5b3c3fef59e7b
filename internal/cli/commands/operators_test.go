package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorsCommand_ListsKnownDialect(t *testing.T) {
	cmd := NewOperatorsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dialect", "mssql"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Operator")
	assert.Contains(t, out.String(), "add")
}

func TestOperatorsCommand_UnknownDialectReturnsError(t *testing.T) {
	cmd := NewOperatorsCommand()
	cmd.SetArgs([]string{"--dialect", "not-a-real-dialect"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	assert.Error(t, err)
}
