// Package format is the public entry point for reprinting a PR program
// tree back into canonical surface syntax.
package format

import (
	"fmt"

	"github.com/leapstack-labs/prqlcore/pkg/comments"
	"github.com/leapstack-labs/prqlcore/pkg/pr"
	"github.com/leapstack-labs/prqlcore/pkg/token"
)

// Program formats a full parsed program: it attaches comments from the
// token stream onto the tree, then reprints every statement at the given
// line width. Any comments left unattached (not adjacent to any node) are
// appended verbatim at the end of the output, one per line.
func Program(stmts []*pr.Stmt, stream token.Stream, width int) (string, error) {
	leftover := comments.Attach(stmts, stream)

	out, ok := WriteProgram(stmts, width)
	if !ok {
		return "", fmt.Errorf("format: could not render program within any available width")
	}

	for _, c := range leftover {
		out += "# " + c.Text + "\n"
	}
	return out, nil
}

// Idempotent reformats stmts/stream and reports whether the result matches
// previous (the output of a prior Program call on the same source):
// formatting a second time must be a no-op.
func Idempotent(stmts []*pr.Stmt, stream token.Stream, width int, previous string) (bool, error) {
	out, err := Program(stmts, stream, width)
	if err != nil {
		return false, err
	}
	return out == previous, nil
}
