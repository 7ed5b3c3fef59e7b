// Package writeopt is the mutable formatting context threaded down the
// writer tree: remaining line width, indent depth, the
// enclosing expression's binding strength, which operand slot the current
// expression occupies, and whether it is exposed to the left-binding
// hazard.
//
// consume is the single gating operation behind the whole layout
// algorithm: a writer that cannot fit its rendering in the remaining
// budget reports failure (via the bool return) and the caller escalates
// to a wider or multi-line strategy — no panics, no exceptions.
package writeopt

import (
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/prqlcore/pkg/token"
)

// Position is which operand slot an expression occupies in its parent.
type Position int

const (
	PosUnspecified Position = iota
	PosLeft
	PosRight
)

// Unlimited marks a line with no width budget (used by the "compact"
// writer, which only ever produces single-line output).
const Unlimited = 1<<16 - 1 // u16::MAX, matching the original's sentinel

const indentUnit = 2

// Options is the write context. It is cheap to copy; callers clone it per
// child and mutate the clone, matching the original's `mut opt` pattern.
type Options struct {
	Indent          int
	RemWidth        int
	ContextStrength uint8
	BinaryPosition  Position
	UnboundExpr     bool
	EnableComments  bool
	Tokens          token.Stream
}

// New returns options for a line of the given width, at the root context
// (weakest possible strength, so nothing at the top level ever gets
// spuriously parenthesized).
func New(width int) Options {
	return Options{RemWidth: width}
}

// Compact returns options for single-line, unlimited-width rendering
// (used by translate_operand-style recursive rendering where layout
// width doesn't matter, only parenthesization does).
func Compact() Options {
	return Options{RemWidth: Unlimited}
}

// Consume checks that s fits in the remaining width, decrements the
// budget, and returns s unchanged; ok is false (and the budget untouched)
// if s would overflow the line.
func (o *Options) Consume(s string) (string, bool) {
	if !o.ConsumeWidth(utf8.RuneCountInString(s)) {
		return "", false
	}
	return s, true
}

// ConsumeWidth reserves n columns without producing a string (used before
// writing something already measured elsewhere).
func (o *Options) ConsumeWidth(n int) bool {
	if n > o.RemWidth {
		return false
	}
	o.RemWidth -= n
	return true
}

// ResetLine restores the remaining width to the full configured line
// width (used when starting a fresh physical line, e.g. after a forced
// newline inside a wrapped tuple/array/pipeline).
func (o *Options) ResetLine(width int) {
	o.RemWidth = width
}

// WriteIndent renders the current indent depth as spaces.
func (o Options) WriteIndent() string {
	return strings.Repeat(" ", o.Indent*indentUnit)
}

// WithContext returns a clone of o for rendering a child under the given
// parent binding strength and operand position, with EnableComments
// suppressed (comments for a node nested like this are handled once, by
// the outermost Expr.Write call for that node — see format/expr.go).
func (o Options) WithContext(parentStrength uint8, pos Position) Options {
	c := o
	if parentStrength > c.ContextStrength {
		c.ContextStrength = parentStrength
	}
	c.BinaryPosition = pos
	c.EnableComments = false
	return c
}

// StrongerRequiredStrength mirrors what the Operator Translator needs: a
// context strength floor without touching position/unbound flags.
func (o Options) StrongerRequiredStrength(min uint8) Options {
	c := o
	if min > c.ContextStrength {
		c.ContextStrength = min
	}
	return c
}

// FreshContext resets the context strength down to zero (weakest
// possible) — used when entering a fresh bracketed region (inside
// `(...)`, `{...}`, `[...]`) where the enclosing operator's strength no
// longer constrains what's inside the brackets.
func (o Options) FreshContext() Options {
	c := o
	c.ContextStrength = 0
	c.BinaryPosition = PosUnspecified
	c.UnboundExpr = false
	return c
}
