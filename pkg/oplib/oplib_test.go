package oplib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/prqlcore/pkg/dialect"
	"github.com/leapstack-labs/prqlcore/pkg/precedence"
)

func TestLookup_RootDefinitionUsedWhenNoDialectOverride(t *testing.T) {
	def, err := Lookup(dialect.Generic, "add")
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, []string{"l", "r"}, def.Params)
	assert.Equal(t, uint8(17), def.Strength)
}

func TestLookup_DialectOverrideWinsOverRoot(t *testing.T) {
	root, err := Lookup(dialect.Generic, "concat")
	require.NoError(t, err)
	require.NotNil(t, root)

	override, err := Lookup(dialect.MSSQL, "concat")
	require.NoError(t, err)
	require.NotNil(t, override)

	assert.NotEqual(t, root.Template, override.Template)
}

func TestLookup_UnknownNameReturnsNilWithoutError(t *testing.T) {
	def, err := Lookup(dialect.Generic, "frobnicate")
	require.NoError(t, err)
	assert.Nil(t, def)
}

func TestLookup_AtomicDefaultStrengthWhenUnannotated(t *testing.T) {
	def, err := Lookup(dialect.Generic, "floor")
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, uint8(precedence.StrengthAtomic), def.Strength)
}

func TestLookup_ConcatIsVariadic(t *testing.T) {
	def, err := Lookup(dialect.Generic, "concat")
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.True(t, def.Variadic)
	assert.Equal(t, []string{"l", "r"}, def.Params)
}

func TestAcceptsNull_OnlyCoalesce(t *testing.T) {
	coalesce, err := Lookup(dialect.Generic, "coalesce")
	require.NoError(t, err)
	require.NotNil(t, coalesce)
	assert.True(t, coalesce.AcceptsNull())

	add, err := Lookup(dialect.Generic, "add")
	require.NoError(t, err)
	require.NotNil(t, add)
	assert.False(t, add.AcceptsNull())
}

func TestListForDialect_MergesRootAndOverridesSorted(t *testing.T) {
	defs, err := ListForDialect(dialect.MSSQL)
	require.NoError(t, err)
	require.NotEmpty(t, defs)

	for i := 1; i < len(defs); i++ {
		assert.LessOrEqual(t, defs[i-1].Name, defs[i].Name)
	}

	names := make(map[string]*Definition, len(defs))
	for _, d := range defs {
		names[d.Name] = d
	}
	ceil, ok := names["ceil"]
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, ceil.Params)
}

func TestListForDialect_UnknownDialectFallsBackToRoot(t *testing.T) {
	defs, err := ListForDialect(dialect.Name("nonexistent"))
	require.NoError(t, err)

	rootDefs, err := ListForDialect(dialect.Generic)
	require.NoError(t, err)
	assert.Equal(t, len(rootDefs), len(defs))
}
