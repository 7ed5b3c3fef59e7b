package translate

import (
	"testing"

	"github.com/leapstack-labs/prqlcore/pkg/dialect"
	"github.com/leapstack-labs/prqlcore/pkg/pr"
	"github.com/leapstack-labs/prqlcore/pkg/rq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_SimpleAdd(t *testing.T) {
	e := rq.Op("std.add", rq.Col("", "x"), rq.Lit(pr.Literal{Kind: pr.LitInteger, Text: "1"}))
	res, err := Translate(e, dialect.Generic)
	require.NoError(t, err)
	assert.Equal(t, "x + 1", res.Text)
}

func TestTranslate_NestedOperatorParenthesizesWeakerChild(t *testing.T) {
	// (x + 1) * 2: the sum is a multiplication operand, so its rendering
	// must be parenthesized since its strength (17) is below mul's
	// required slot strength (18).
	sum := rq.Op("std.add", rq.Col("", "x"), rq.Lit(pr.Literal{Kind: pr.LitInteger, Text: "1"}))
	e := rq.Op("std.mul", sum, rq.Lit(pr.Literal{Kind: pr.LitInteger, Text: "2"}))
	res, err := Translate(e, dialect.Generic)
	require.NoError(t, err)
	assert.Equal(t, "(x + 1) * 2", res.Text)
}

func TestTranslate_DialectOverride(t *testing.T) {
	e := rq.Op("std.concat", rq.Col("", "a"), rq.Col("", "b"))

	generic, err := Translate(e, dialect.Generic)
	require.NoError(t, err)
	assert.Equal(t, "a || b", generic.Text)

	mssql, err := Translate(e, dialect.MSSQL)
	require.NoError(t, err)
	assert.Equal(t, "a + b", mssql.Text)
}

func TestTranslate_VariadicConcatFoldsOverThreeArgs(t *testing.T) {
	e := rq.Op("std.concat", rq.Col("", "a"), rq.Col("", "b"), rq.Col("", "c"))

	generic, err := Translate(e, dialect.Generic)
	require.NoError(t, err)
	assert.Equal(t, "a || b || c", generic.Text)

	mssql, err := Translate(e, dialect.MSSQL)
	require.NoError(t, err)
	assert.Equal(t, "a + b + c", mssql.Text)
}

func TestTranslate_VariadicRequiresAtLeastTwoArgs(t *testing.T) {
	e := rq.Op("std.concat", rq.Col("", "a"))
	_, err := Translate(e, dialect.Generic)
	require.Error(t, err)
}

func TestTranslate_ArityMismatchErrors(t *testing.T) {
	e := rq.Op("std.add", rq.Col("", "x"))
	_, err := Translate(e, dialect.Generic)
	require.Error(t, err)
}

func TestTranslate_UnknownOperatorErrors(t *testing.T) {
	e := rq.Op("std.frobnicate", rq.Col("", "x"))
	_, err := Translate(e, dialect.Generic)
	require.Error(t, err)
}
