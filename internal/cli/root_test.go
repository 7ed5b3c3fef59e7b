package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	root := NewRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["fmt"])
	assert.True(t, names["translate"])
	assert.True(t, names["operators"])
}

func TestNewRootCmd_OperatorsRunsWithDefaultConfig(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"operators", "--dialect", "generic"})

	err := root.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Operator")
}

func TestLoggerFrom_FallsBackToDefault(t *testing.T) {
	l := LoggerFrom(t.Context())
	assert.NotNil(t, l)
	assert.Same(t, slog.Default(), l)
}
