package diagnostic

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/prqlcore/pkg/token"
)

func TestRender_NoSpanPrintsMessageOnly(t *testing.T) {
	d := New(uuid.New(), "something broke", nil)

	got := Render(d, "select 1", NoColorStyles)

	assert.Equal(t, "something broke\n", got)
}

func TestRender_InvalidSpanPrintsMessageOnly(t *testing.T) {
	d := New(uuid.New(), "something broke", &token.Span{})

	got := Render(d, "select 1", NoColorStyles)

	assert.Equal(t, "something broke\n", got)
}

func TestRender_ValidSpanIncludesLocationSourceLineAndCaret(t *testing.T) {
	sp := &token.Span{
		Start: token.Pos{Offset: 7, Line: 1, Column: 8},
		End:   token.Pos{Offset: 10, Line: 1, Column: 11},
	}
	d := New(uuid.New(), "unknown operator", sp)

	got := Render(d, "from x | take 3", NoColorStyles)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1:8: unknown operator", lines[0])
	assert.Contains(t, lines[1], "from x | take 3")
	assert.Contains(t, lines[2], "^^^")
}

func TestRender_SpanOnMissingLineSkipsSourceRender(t *testing.T) {
	sp := &token.Span{
		Start: token.Pos{Offset: 0, Line: 5, Column: 1},
		End:   token.Pos{Offset: 3, Line: 5, Column: 4},
	}
	d := New(uuid.New(), "oops", sp)

	got := Render(d, "only one line", NoColorStyles)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "5:1: oops", lines[0])
}

func TestNewSession_ProducesDistinctIDs(t *testing.T) {
	a := NewSession()
	b := NewSession()
	assert.NotEqual(t, a, b)
}

func TestSessionLogger_AttachesSessionID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))
	sid := uuid.New()

	got := SessionLogger(base, sid)

	assert.NotNil(t, got)
	got.Info("hello")
	assert.Contains(t, buf.String(), "session_id="+sid.String())
}
