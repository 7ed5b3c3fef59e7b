// Package token holds the span and aesthetic-token types shared by the PR
// data model and the formatter. Lexing itself is an external collaborator
// — this package only defines the shapes that flow across that boundary.
package token

// Pos is a single point in the source, tracked both as a byte offset (for
// ordering comparisons) and as line/column (for diagnostics).
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Span covers [Start, End) in the source.
type Span struct {
	Start Pos
	End   Pos
}

// IsValid reports whether the span was ever set (the zero Span is invalid,
// matching spans that were never attached to a synthesized node).
func (s Span) IsValid() bool {
	return s.End.Offset > s.Start.Offset || s.End.Line > s.Start.Line
}

// Kind classifies an aesthetic token retained from the lexer for
// reproduction by the formatter. Only comments, newlines, and line-wraps
// are aesthetic; all other tokens are consumed by parsing and never reach
// the Comment Attacher.
type Kind int

const (
	KindComment Kind = iota
	KindNewline
	KindLineWrap
)

// Token is one retained aesthetic token.
type Token struct {
	Kind Kind
	Span Span
	Text string // comment body, without the leading '#'
}

// Stream is the token vector the parser hands to the formatter, filtered
// down to only the aesthetic tokens (comments/newlines/line-wraps) in
// source order — everything else was already consumed building the PR
// tree and has no further role here.
type Stream []Token
