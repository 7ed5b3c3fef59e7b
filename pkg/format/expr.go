// Package format is the Expression Writer and Statement Writer: it
// reprints a PR tree back into canonical, precedence-aware surface
// syntax. One function per AST node kind, keyword/literal helpers, and a
// parenthesis/width-gated consume-retry layout algorithm: a writer that
// doesn't fit within its remaining width budget reports failure and the
// caller escalates to a wider or multi-line strategy.
package format

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/prqlcore/pkg/ident"
	"github.com/leapstack-labs/prqlcore/pkg/precedence"
	"github.com/leapstack-labs/prqlcore/pkg/pr"
	"github.com/leapstack-labs/prqlcore/pkg/token"
	"github.com/leapstack-labs/prqlcore/pkg/writeopt"
)

// defaultLineWidth is the column budget a fresh wrapped line resets to.
const defaultLineWidth = 80

// WriteExpr renders e under opt, or reports ok=false if it cannot fit
// within opt.RemWidth. Tuples, arrays, pipelines, case expressions and
// parenthesized expressions fall back to a multi-line layout on their own
// and then return ok=true; callers that get ok=false should retry with a
// wider budget or a multi-line strategy.
func WriteExpr(e *pr.Expr, opt writeopt.Options) (string, bool) {
	if e == nil {
		return "", true
	}

	var r strings.Builder

	if e.Alias != "" {
		s, ok := opt.Consume(ident.WritePart(e.Alias) + " = ")
		if !ok {
			return "", false
		}
		r.WriteString(s)
		opt.UnboundExpr = false
	}

	if !needsParenthesis(e, opt) {
		body, ok := writeExprKind(e, opt)
		if !ok {
			return "", false
		}
		r.WriteString(body)
	} else {
		body, ok := writeParenthesized(e, opt)
		if !ok {
			return "", false
		}
		r.WriteString(body)
	}

	if opt.EnableComments && len(e.Comments) > 0 {
		r.WriteString(writeTrailingComments(e.Comments))
	}

	return r.String(), true
}

func writeParenthesized(e *pr.Expr, opt writeopt.Options) (string, bool) {
	inner := opt.FreshContext()
	inner.RemWidth = opt.RemWidth
	if !inner.ConsumeWidth(2) { // "(" + ")"
		return wrapMultilineParens(e, opt)
	}
	body, ok := writeExprKind(e, inner)
	if !ok {
		return wrapMultilineParens(e, opt)
	}
	if !opt.ConsumeWidth(len(body) + 2) {
		return wrapMultilineParens(e, opt)
	}
	return "(" + body + ")", true
}

// wrapMultilineParens is the fallback for a parenthesized expression that
// doesn't fit on one line: break after the opening paren, indent, and
// retry with a reset line budget.
func wrapMultilineParens(e *pr.Expr, opt writeopt.Options) (string, bool) {
	var r strings.Builder
	r.WriteString("(\n")
	inner := opt.FreshContext()
	inner.Indent = opt.Indent + 1
	inner.ResetLine(lineWidthFor(opt))
	r.WriteString(inner.WriteIndent())
	body, ok := writeExprKind(e, inner)
	if !ok {
		return "", false
	}
	r.WriteString(body)
	r.WriteString("\n")
	r.WriteString(opt.WriteIndent())
	r.WriteString(")")
	return r.String(), true
}

func lineWidthFor(opt writeopt.Options) int {
	if opt.RemWidth == writeopt.Unlimited {
		return writeopt.Unlimited
	}
	return defaultLineWidth
}

// needsParenthesis implements invariants 1 and 2.
func needsParenthesis(e *pr.Expr, opt writeopt.Options) bool {
	if opt.UnboundExpr && precedence.CanBindLeft(e) {
		return true
	}

	strength := precedence.Strength(e)
	if opt.ContextStrength > strength {
		return true
	}
	if opt.ContextStrength < strength {
		return false
	}

	assoc := precedence.Associativity(e)
	switch opt.BinaryPosition {
	case writeopt.PosLeft:
		return assoc != precedence.AssocLeft
	case writeopt.PosRight:
		return assoc != precedence.AssocRight
	default:
		return true
	}
}

// writeWithin renders a child expression under its parent's binding
// strength and operand position (the write_within collaborator of the
// original).
func writeWithin(child *pr.Expr, parentStrength uint8, pos writeopt.Position, opt writeopt.Options) (string, bool) {
	inner := opt.WithContext(parentStrength, pos)
	return WriteExpr(child, inner)
}

func writeExprKind(e *pr.Expr, opt writeopt.Options) (string, bool) {
	switch e.Kind {
	case pr.KindIdent:
		return opt.Consume(ident.WritePart(e.Ident))

	case pr.KindIndirection:
		return writeIndirection(e, opt)

	case pr.KindPipeline:
		return writeSeparated(e.Exprs, " | ", "", "(", ")", opt)

	case pr.KindTuple:
		return writeSeparated(e.Exprs, ", ", ",", "{", "}", opt)

	case pr.KindArray:
		return writeSeparated(e.Exprs, ", ", ",", "[", "]", opt)

	case pr.KindRange:
		return writeRange(e, opt)

	case pr.KindBinary:
		return writeBinary(e, opt)

	case pr.KindUnary:
		return writeUnary(e, opt)

	case pr.KindFuncCall:
		return writeFuncCall(e, opt)

	case pr.KindFuncLit:
		return writeFuncLit(e, opt)

	case pr.KindSString:
		return writeInterpolation("s", e.Parts, opt)

	case pr.KindFString:
		return writeInterpolation("f", e.Parts, opt)

	case pr.KindLiteral:
		return opt.Consume(writeLiteral(e.Literal))

	case pr.KindCase:
		return writeCase(e, opt)

	case pr.KindParam:
		return opt.Consume("$" + strconv.Itoa(e.ParamID))

	case pr.KindInternal:
		return opt.Consume("internal " + e.InternalName)

	default:
		return "", false
	}
}

func writeIndirection(e *pr.Expr, opt writeopt.Options) (string, bool) {
	// The base inherits this indirection's own context rather than being
	// written within it — an indirection is atomic, so imposing its own
	// (atomic) strength on the base would parenthesize a bare ident/tuple
	// base at the equal-strength-unspecified-position branch of
	// needsParenthesis (`a.b` would render as `(a).b`).
	base, ok := WriteExpr(e.Base, opt)
	if !ok {
		return "", false
	}
	if !opt.ConsumeWidth(len(base) + 1) {
		return "", false
	}
	var field string
	switch e.FieldKind {
	case pr.IndirName:
		field = ident.WritePart(e.FieldName)
	case pr.IndirPosition:
		field = strconv.Itoa(e.FieldIndex)
	case pr.IndirStar:
		field = "*"
	}
	if !opt.ConsumeWidth(len(field)) {
		return "", false
	}
	return base + "." + field, true
}

// writeSeparated renders Pipeline/Tuple/Array: `open elem, elem close`
// inline if it fits, otherwise one element per line, each terminated with
// lineEnd (including the last — required for idempotence, see
// SPEC_FULL.md's "trailing comma on wrap" supplemented feature) and
// indented one level deeper than open.
func writeSeparated(exprs []*pr.Expr, inlineSep, lineEnd, open, closeStr string, opt writeopt.Options) (string, bool) {
	inline := opt.FreshContext()
	inline.RemWidth = opt.RemWidth
	if s, ok := tryInline(exprs, inlineSep, open, closeStr, inline); ok {
		if opt.ConsumeWidth(len(s)) {
			return s, true
		}
	}
	return writeWrapped(exprs, lineEnd, open, closeStr, opt)
}

func tryInline(exprs []*pr.Expr, sep, open, closeStr string, opt writeopt.Options) (string, bool) {
	var r strings.Builder
	r.WriteString(open)
	if !opt.ConsumeWidth(len(open)) {
		return "", false
	}
	for i, e := range exprs {
		if i > 0 {
			if !opt.ConsumeWidth(len(sep)) {
				return "", false
			}
			r.WriteString(sep)
		}
		body, ok := WriteExpr(e, opt)
		if !ok {
			return "", false
		}
		if !opt.ConsumeWidth(len(body)) {
			return "", false
		}
		r.WriteString(body)
	}
	if !opt.ConsumeWidth(len(closeStr)) {
		return "", false
	}
	r.WriteString(closeStr)
	return r.String(), true
}

func writeWrapped(exprs []*pr.Expr, lineEnd, open, closeStr string, opt writeopt.Options) (string, bool) {
	var r strings.Builder
	r.WriteString(open)
	inner := opt.FreshContext()
	inner.Indent = opt.Indent + 1
	for _, e := range exprs {
		r.WriteString("\n")
		r.WriteString(inner.WriteIndent())
		inner.ResetLine(lineWidthFor(opt))
		body, ok := WriteExpr(e, inner)
		if !ok {
			return "", false
		}
		r.WriteString(body)
		r.WriteString(lineEnd)
	}
	r.WriteString("\n")
	r.WriteString(opt.WriteIndent())
	r.WriteString(closeStr)
	return r.String(), true
}

func writeRange(e *pr.Expr, opt writeopt.Options) (string, bool) {
	var r strings.Builder
	strength := precedence.Strength(e)
	if e.RangeStart != nil {
		s, ok := writeWithin(e.RangeStart, strength, writeopt.PosLeft, opt)
		if !ok {
			return "", false
		}
		if !opt.ConsumeWidth(len(s)) {
			return "", false
		}
		r.WriteString(s)
	}
	if !opt.ConsumeWidth(2) {
		return "", false
	}
	r.WriteString("..")
	if e.RangeEnd != nil {
		s, ok := writeWithin(e.RangeEnd, strength, writeopt.PosRight, opt)
		if !ok {
			return "", false
		}
		r.WriteString(s)
	}
	return r.String(), true
}

func writeBinary(e *pr.Expr, opt writeopt.Options) (string, bool) {
	strength := precedence.Strength(e)

	left, ok := writeWithin(e.Left, strength, writeopt.PosLeft, opt)
	if !ok {
		return "", false
	}
	if !opt.ConsumeWidth(len(left)) {
		return "", false
	}

	op := e.BinOp.String()
	if !opt.ConsumeWidth(len(op) + 2) {
		return "", false
	}

	right, ok := writeWithin(e.Right, strength, writeopt.PosRight, opt)
	if !ok {
		return "", false
	}

	return left + " " + op + " " + right, true
}

func writeUnary(e *pr.Expr, opt writeopt.Options) (string, bool) {
	op := e.UnOp.String()
	if !opt.ConsumeWidth(len(op)) {
		return "", false
	}
	operand, ok := writeWithin(e.Operand, precedence.Strength(e), writeopt.PosUnspecified, opt)
	if !ok {
		return "", false
	}
	return op + operand, true
}

func writeFuncCall(e *pr.Expr, opt writeopt.Options) (string, bool) {
	var r strings.Builder

	name, ok := writeWithin(e.Callee, precedence.Strength(e), writeopt.PosUnspecified, opt)
	if !ok {
		return "", false
	}
	if !opt.ConsumeWidth(len(name)) {
		return "", false
	}
	r.WriteString(name)
	opt.UnboundExpr = true

	for _, na := range e.NamedArgs {
		prefix := " " + na.Name + ":"
		if !opt.ConsumeWidth(len(prefix)) {
			return "", false
		}
		val, ok := writeWithin(na.Value, precedence.Strength(e), writeopt.PosUnspecified, opt)
		if !ok {
			return "", false
		}
		if !opt.ConsumeWidth(len(val)) {
			return "", false
		}
		r.WriteString(prefix)
		r.WriteString(val)
	}
	for _, arg := range e.Args {
		if !opt.ConsumeWidth(1) {
			return "", false
		}
		val, ok := writeWithin(arg, precedence.Strength(e), writeopt.PosUnspecified, opt)
		if !ok {
			return "", false
		}
		if !opt.ConsumeWidth(len(val)) {
			return "", false
		}
		r.WriteString(" ")
		r.WriteString(val)
	}
	return r.String(), true
}

func writeFuncLit(e *pr.Expr, opt writeopt.Options) (string, bool) {
	var r strings.Builder
	r.WriteString("func ")
	if !opt.ConsumeWidth(len("func ")) {
		return "", false
	}

	if len(e.GenericParams) > 0 {
		r.WriteString("<")
		if !opt.ConsumeWidth(len("<")) {
			return "", false
		}
		for i, gp := range e.GenericParams {
			if i > 0 {
				r.WriteString(", ")
				if !opt.ConsumeWidth(len(", ")) {
					return "", false
				}
			}
			name := ident.WritePart(gp.Name)
			r.WriteString(name)
			if !opt.ConsumeWidth(len(name)) {
				return "", false
			}
			if len(gp.Domain) > 0 {
				r.WriteString(": ")
				if !opt.ConsumeWidth(len(": ")) {
					return "", false
				}
				domain, ok := writeSeparatedInline(gp.Domain, " | ", opt)
				if !ok {
					return "", false
				}
				if !opt.ConsumeWidth(len(domain)) {
					return "", false
				}
				r.WriteString(domain)
			}
		}
		r.WriteString("> ")
		if !opt.ConsumeWidth(len("> ")) {
			return "", false
		}
	}

	for _, p := range e.Params {
		name := ident.WritePart(p.Name)
		r.WriteString(name)
		r.WriteString(" ")
		if !opt.ConsumeWidth(len(name) + 1) {
			return "", false
		}
		if p.Type != nil {
			ty, ok := writeBracketed(p.Type, opt)
			if !ok {
				return "", false
			}
			r.WriteString(ty)
			r.WriteString(" ")
			if !opt.ConsumeWidth(len(ty) + 1) {
				return "", false
			}
		}
	}
	for _, p := range e.NamedParams {
		prefix := ident.WritePart(p.Name) + ":"
		r.WriteString(prefix)
		if !opt.ConsumeWidth(len(prefix)) {
			return "", false
		}
		val, ok := WriteExpr(p.Default, opt)
		if !ok {
			return "", false
		}
		r.WriteString(val)
		r.WriteString(" ")
		if !opt.ConsumeWidth(len(val) + 1) {
			return "", false
		}
	}
	r.WriteString("-> ")
	if !opt.ConsumeWidth(len("-> ")) {
		return "", false
	}

	if e.ReturnType != nil {
		ty, ok := writeBracketed(e.ReturnType, opt)
		if !ok {
			return "", false
		}
		r.WriteString(ty)
		r.WriteString(" ")
		if !opt.ConsumeWidth(len(ty) + 1) {
			return "", false
		}
	}

	if body, ok := WriteExpr(e.Body, opt); ok {
		r.WriteString(body)
		return r.String(), true
	}
	body, ok := wrapMultilineParens(e.Body, opt)
	if !ok {
		return "", false
	}
	r.WriteString(body)
	return r.String(), true
}

func writeBracketed(e *pr.Expr, opt writeopt.Options) (string, bool) {
	inner := opt.FreshContext()
	body, ok := WriteExpr(e, inner)
	if !ok {
		return "", false
	}
	return "<" + body + ">", true
}

func writeSeparatedInline(exprs []*pr.Expr, sep string, opt writeopt.Options) (string, bool) {
	var r strings.Builder
	for i, e := range exprs {
		if i > 0 {
			if !opt.ConsumeWidth(len(sep)) {
				return "", false
			}
			r.WriteString(sep)
		}
		inner := opt.FreshContext()
		body, ok := WriteExpr(e, inner)
		if !ok {
			return "", false
		}
		if !opt.ConsumeWidth(len(body)) {
			return "", false
		}
		r.WriteString(body)
	}
	return r.String(), true
}

func writeInterpolation(prefix string, parts []pr.InterpolatePart, opt writeopt.Options) (string, bool) {
	var r strings.Builder
	r.WriteString(prefix)
	r.WriteString(`"`)
	if !opt.ConsumeWidth(len(prefix) + 1) {
		return "", false
	}
	for _, p := range parts {
		if !p.IsExpr {
			text := doubleBraces(p.Text)
			if !opt.ConsumeWidth(len(text)) {
				return "", false
			}
			r.WriteString(text)
			continue
		}
		r.WriteString("{")
		if !opt.ConsumeWidth(1) {
			return "", false
		}
		ctx := opt.FreshContext()
		if p.Format != nil {
			ctx = ctx.StrongerRequiredStrength(uint8(*p.Format))
		}
		body, ok := WriteExpr(p.Expr, ctx)
		if !ok {
			return "", false
		}
		if !opt.ConsumeWidth(len(body)) {
			return "", false
		}
		r.WriteString(body)
		if p.Format != nil {
			suffix := ":" + strconv.Itoa(*p.Format)
			if !opt.ConsumeWidth(len(suffix)) {
				return "", false
			}
			r.WriteString(suffix)
		}
		r.WriteString("}")
		if !opt.ConsumeWidth(1) {
			return "", false
		}
	}
	r.WriteString(`"`)
	if !opt.ConsumeWidth(1) {
		return "", false
	}
	return r.String(), true
}

func doubleBraces(s string) string {
	s = strings.ReplaceAll(s, "{", "{{")
	s = strings.ReplaceAll(s, "}", "}}")
	return s
}

// writeCase renders a `case [cond => val, ...]` expression, trying the
// inline form first and falling back to one arm per line (like
// writeSeparated does for pipelines/tuples/arrays) when the inline form
// doesn't fit the remaining width.
func writeCase(e *pr.Expr, opt writeopt.Options) (string, bool) {
	inline := opt.FreshContext()
	inline.RemWidth = opt.RemWidth
	if s, ok := tryCaseInline(e.Cases, inline); ok {
		if opt.ConsumeWidth(len(s)) {
			return s, true
		}
	}
	return writeCaseWrapped(e.Cases, opt)
}

func writeCaseArm(c pr.SwitchCase, opt writeopt.Options) (string, bool) {
	cond, ok := WriteExpr(c.Condition, opt.FreshContext())
	if !ok {
		return "", false
	}
	if !opt.ConsumeWidth(len(cond)) {
		return "", false
	}
	if !opt.ConsumeWidth(len(" => ")) {
		return "", false
	}
	val, ok := WriteExpr(c.Value, opt.FreshContext())
	if !ok {
		return "", false
	}
	if !opt.ConsumeWidth(len(val)) {
		return "", false
	}
	return cond + " => " + val, true
}

func tryCaseInline(cases []pr.SwitchCase, opt writeopt.Options) (string, bool) {
	var r strings.Builder
	r.WriteString("case [")
	if !opt.ConsumeWidth(len("case [")) {
		return "", false
	}
	for i, c := range cases {
		if i > 0 {
			if !opt.ConsumeWidth(len(", ")) {
				return "", false
			}
			r.WriteString(", ")
		}
		arm, ok := writeCaseArm(c, opt)
		if !ok {
			return "", false
		}
		if !opt.ConsumeWidth(len(arm)) {
			return "", false
		}
		r.WriteString(arm)
	}
	if !opt.ConsumeWidth(len("]")) {
		return "", false
	}
	r.WriteString("]")
	return r.String(), true
}

func writeCaseWrapped(cases []pr.SwitchCase, opt writeopt.Options) (string, bool) {
	var r strings.Builder
	r.WriteString("case [")
	inner := opt.FreshContext()
	inner.Indent = opt.Indent + 1
	for _, c := range cases {
		r.WriteString("\n")
		r.WriteString(inner.WriteIndent())
		inner.ResetLine(lineWidthFor(opt))
		arm, ok := writeCaseArm(c, inner)
		if !ok {
			return "", false
		}
		r.WriteString(arm)
		r.WriteString(",")
	}
	r.WriteString("\n")
	r.WriteString(opt.WriteIndent())
	r.WriteString("]")
	return r.String(), true
}

func writeLiteral(lit pr.Literal) string {
	switch lit.Kind {
	case pr.LitString:
		return `"` + lit.Text + `"`
	case pr.LitNull:
		return "null"
	default:
		return lit.Text
	}
}

// writeTrailingComments renders same-line comments attached after an
// expression by the Comment Attacher.
func writeTrailingComments(comments []token.Token) string {
	var r strings.Builder
	for _, c := range comments {
		r.WriteString("  # ")
		r.WriteString(c.Text)
	}
	return r.String()
}
