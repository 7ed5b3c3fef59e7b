package cliconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNothingElseSet(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultLineWidth, cfg.LineWidth)
	assert.Equal(t, DefaultColor, cfg.Color)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "prqlcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: postgres\nline_width: 100\n"), 0600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, 100, cfg.LineWidth)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "prqlcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: postgres\n"), 0600))
	t.Setenv("PRQLCORE_DIALECT", "sqlite")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Dialect)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("PRQLCORE_DIALECT", "sqlite")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "", "")
	require.NoError(t, flags.Set("dialect", "mssql"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "mssql", cfg.Dialect)
}

func TestWithConfig_FromContext_RoundTrip(t *testing.T) {
	cfg := &Config{Dialect: "duckdb", LineWidth: 120, Color: false}
	ctx := WithConfig(context.Background(), cfg)

	got := FromContext(ctx)
	assert.Same(t, cfg, got)
}

func TestFromContext_DefaultsWhenAbsent(t *testing.T) {
	got := FromContext(context.Background())
	assert.Equal(t, DefaultDialect, got.Dialect)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
