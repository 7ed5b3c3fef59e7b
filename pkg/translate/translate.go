// Package translate is the Operator Translator: it lowers an
// RQ operator-call node into a dialect-specific SQL text fragment plus the
// binding strength that fragment's top-level syntax carries, so callers
// composing fragments together know when to add parentheses.
//
// Grounded on original_source/prqlc/prqlc/src/sql/operators.rs's
// translate_operator, adapted to this module's oplib/rq/precedence types.
package translate

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/prqlcore/pkg/dialect"
	"github.com/leapstack-labs/prqlcore/pkg/oplib"
	"github.com/leapstack-labs/prqlcore/pkg/precedence"
	"github.com/leapstack-labs/prqlcore/pkg/pr"
	"github.com/leapstack-labs/prqlcore/pkg/rq"
)

// Result is a translated fragment together with the binding strength of
// its outermost syntax, mirroring the (text, strength) pair the original
// translate_operator returns.
type Result struct {
	Text     string
	Strength uint8
}

// Error is a translation failure: an operator this dialect cannot render,
// a malformed library entry, or an arity mismatch between the call site
// and its definition.
type Error struct {
	Op      string
	Dialect dialect.Name
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("translate: %s for dialect %s: %s", e.Op, e.Dialect, e.Reason)
}

// Translate renders e for d. Only KindOperatorCall nodes are looked up in
// the operator library; every other RQ kind is rendered directly (step 0
// of the algorithm — non-operator leaves pass through untranslated).
func Translate(e *rq.Expr, d dialect.Name) (Result, error) {
	if e == nil {
		return Result{}, nil
	}

	switch e.Kind {
	case rq.KindColumnRef:
		if e.Table != "" {
			return Result{Text: e.Table + "." + e.Column, Strength: precedence.StrengthAtomic}, nil
		}
		return Result{Text: e.Column, Strength: precedence.StrengthAtomic}, nil

	case rq.KindLiteral:
		return Result{Text: literalSQL(e.Literal), Strength: precedence.StrengthAtomic}, nil

	case rq.KindRaw:
		return Result{Text: e.Raw, Strength: precedence.StrengthAtomic}, nil

	case rq.KindOperatorCall:
		return translateOperator(e, d)

	default:
		return Result{}, &Error{Op: "?", Dialect: d, Reason: "unknown RQ expression kind"}
	}
}

// translateOperator implements the 8-step algorithm:
//  1. strip the `std.` namespace prefix from the call name
//  2. look up the bare name in the dialect submodule, then the root
//  3. the definition's template carries the binding strength annotations
//     of each interpolation slot; a slot with none requires its parent
//     operator's own strength, inherited from the definition
//  4. a null literal argument against a definition with no null handling
//     is reported as unsupported for this dialect
//  5. a definition whose body isn't an s-string is a malformed-library
//     error — the loader already guarantees this never happens, but the
//     check stays here as the documented contract boundary
//  6. bind named-then-positional parameters 1:1 to RQ args; an arity
//     mismatch is a translation error (SPEC_FULL.md Open Question decision),
//     except for a variadic definition, which folds over 2 or more args
//  7. render the template, splicing literal fragments verbatim and
//     recursively translating each interpolated argument under its
//     required (or inherited) strength
//  8. concatenate the rendered fragments and return (text, strength)
func translateOperator(e *rq.Expr, d dialect.Name) (Result, error) {
	name := strings.TrimPrefix(e.Name, "std.")

	def, err := oplib.Lookup(d, name)
	if err != nil {
		return Result{}, &Error{Op: e.Name, Dialect: d, Reason: "operator library failed to load: " + err.Error()}
	}
	if def == nil {
		return Result{}, &Error{Op: e.Name, Dialect: d, Reason: "operator has no definition for this dialect"}
	}

	for _, a := range e.Args {
		if a.Kind == rq.KindLiteral && a.Literal.Kind == pr.LitNull && !def.AcceptsNull() {
			return Result{}, &Error{Op: e.Name, Dialect: d, Reason: "null argument is unsupported for this operator in this dialect"}
		}
	}

	if def.Variadic {
		return translateVariadic(e, d, def)
	}

	if len(def.Params) != len(e.Args) {
		return Result{}, &Error{
			Op:      e.Name,
			Dialect: d,
			Reason:  fmt.Sprintf("arity mismatch: definition takes %d argument(s), call has %d", len(def.Params), len(e.Args)),
		}
	}

	bound := make(map[string]Result, len(def.Params))
	for i, p := range def.Params {
		res, err := Translate(e.Args[i], d)
		if err != nil {
			return Result{}, err
		}
		bound[p] = res
	}

	text, err := renderTemplate(def, bound, e.Name, d)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text, Strength: def.Strength}, nil
}

// translateVariadic folds a variadic definition's 2-param template over a
// call with 2 or more arguments, left to right: `std.concat [a, b, c]`
// is folded as (a <op> b) <op> c and renders as `a <op> b <op> c`, with
// each step's folded result fed back in as the next step's first operand
// at the operator's own strength (parenthesized only when that strength is
// below the slot's required strength).
func translateVariadic(e *rq.Expr, d dialect.Name, def *oplib.Definition) (Result, error) {
	if len(e.Args) < 2 {
		return Result{}, &Error{
			Op:      e.Name,
			Dialect: d,
			Reason:  fmt.Sprintf("variadic operator requires at least 2 arguments, call has %d", len(e.Args)),
		}
	}

	acc, err := Translate(e.Args[0], d)
	if err != nil {
		return Result{}, err
	}
	for _, next := range e.Args[1:] {
		right, err := Translate(next, d)
		if err != nil {
			return Result{}, err
		}
		bound := map[string]Result{def.Params[0]: acc, def.Params[1]: right}
		text, err := renderTemplate(def, bound, e.Name, d)
		if err != nil {
			return Result{}, err
		}
		acc = Result{Text: text, Strength: def.Strength}
	}
	return acc, nil
}

func renderTemplate(def *oplib.Definition, bound map[string]Result, opName string, d dialect.Name) (string, error) {
	var out strings.Builder
	for _, part := range def.Template {
		if !part.IsParam {
			out.WriteString(part.Text)
			continue
		}
		r, ok := bound[part.Param]
		if !ok {
			return "", &Error{Op: opName, Dialect: d, Reason: "template references unbound parameter " + part.Param}
		}
		required := int(def.Strength)
		if part.RequiredStrength != nil {
			required = int(*part.RequiredStrength)
		}
		text := r.Text
		if r.Strength < uint8(required) {
			text = "(" + text + ")"
		}
		out.WriteString(text)
	}
	return out.String(), nil
}

func literalSQL(lit pr.Literal) string {
	switch lit.Kind {
	case pr.LitString:
		return "'" + strings.ReplaceAll(lit.Text, "'", "''") + "'"
	case pr.LitNull:
		return "NULL"
	case pr.LitBoolean:
		if lit.Value {
			return "TRUE"
		}
		return "FALSE"
	default:
		return lit.Text
	}
}
