// Package diagnostic renders translate/oplib/format errors against their
// source span on a terminal, and mints the compilation-session id
// attached to every log/slog record for one CLI invocation.
//
// Styles is a struct of named lipgloss.Style fields keyed by role,
// generalized from a severity-to-style map into span-highlighted source
// rendering.
package diagnostic

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/leapstack-labs/prqlcore/pkg/token"
)

// Styles are the lipgloss styles used to render a diagnostic. Color is
// disabled by passing NoColorStyles instead when the CLI's --color flag
// is off or stdout isn't a terminal.
type Styles struct {
	Location lipgloss.Style
	Message  lipgloss.Style
	Gutter   lipgloss.Style
	Caret    lipgloss.Style
}

// DefaultStyles is the color scheme used on a terminal.
var DefaultStyles = Styles{
	Location: lipgloss.NewStyle().Bold(true),
	Message:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	Gutter:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	Caret:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// NoColorStyles renders plain text, for non-terminal output.
var NoColorStyles = Styles{}

// Diagnostic is a single reported problem, optionally anchored to a span
// in some source text.
type Diagnostic struct {
	SessionID uuid.UUID
	Message   string
	Span      *token.Span
}

// New mints a diagnostic for the given session.
func New(sessionID uuid.UUID, message string, span *token.Span) Diagnostic {
	return Diagnostic{SessionID: sessionID, Message: message, Span: span}
}

// Render formats d against source, underlining the span's line with a
// caret run beneath the offending columns when the span is valid and its
// line is present in source.
func Render(d Diagnostic, source string, styles Styles) string {
	var b strings.Builder

	if d.Span == nil || !d.Span.IsValid() {
		fmt.Fprintf(&b, "%s\n", styles.Message.Render(d.Message))
		return b.String()
	}

	lines := strings.Split(source, "\n")
	lineIdx := d.Span.Start.Line - 1
	fmt.Fprintf(&b, "%s %s\n", styles.Location.Render(fmt.Sprintf("%d:%d:", d.Span.Start.Line, d.Span.Start.Column)), styles.Message.Render(d.Message))

	if lineIdx < 0 || lineIdx >= len(lines) {
		return b.String()
	}
	line := lines[lineIdx]
	fmt.Fprintf(&b, "%s %s\n", styles.Gutter.Render(fmt.Sprintf("%4d |", d.Span.Start.Line)), line)

	width := d.Span.End.Column - d.Span.Start.Column
	if width < 1 {
		width = 1
	}
	pad := strings.Repeat(" ", max(0, d.Span.Start.Column-1))
	carets := strings.Repeat("^", width)
	fmt.Fprintf(&b, "     | %s%s\n", pad, styles.Caret.Render(carets))

	return b.String()
}

// NewSession mints a compilation-session id for one CLI invocation.
func NewSession() uuid.UUID {
	return uuid.New()
}

// SessionLogger returns a logger that attaches sessionID to every record
// it emits.
func SessionLogger(base *slog.Logger, sessionID uuid.UUID) *slog.Logger {
	return base.With(slog.String("session_id", sessionID.String()))
}
