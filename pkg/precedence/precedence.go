// Package precedence is the static binding-strength / associativity table.
// It is pure: no allocation, no failure mode, just two total
// functions over pr.ExprKind (and, for binary expressions, over the
// operator symbol).
//
// Grounded on original_source/prqlc/prqlc/src/codegen/ast.rs
// binding_strength()/associativity(), which this mirrors field for field.
package precedence

import "github.com/leapstack-labs/prqlcore/pkg/pr"

// Assoc is the associativity direction used to break ties at equal
// binding strength.
type Assoc int

const (
	AssocUnspecified Assoc = iota
	AssocLeft
	AssocRight
)

const (
	// StrengthAtomic is the binding strength of any expression kind that
	// never needs parenthesization purely from precedence (idents,
	// literals, tuples, arrays, s-strings, f-strings, case, params,
	// internal markers).
	StrengthAtomic = 100
	strengthUnary  = 20
	strengthRange  = 19
	strengthCall   = 10
	strengthFunc   = 7
)

var binaryStrength = map[pr.BinOp]uint8{
	pr.OpPow:         19,
	pr.OpMul:         18,
	pr.OpDivInt:      18,
	pr.OpDivFloat:    18,
	pr.OpMod:         18,
	pr.OpAdd:         17,
	pr.OpSub:         17,
	pr.OpEq:          16,
	pr.OpNe:          16,
	pr.OpGt:          16,
	pr.OpLt:          16,
	pr.OpGte:         16,
	pr.OpLte:         16,
	pr.OpRegexSearch: 16,
	pr.OpCoalesce:    15,
	pr.OpAnd:         14,
	pr.OpOr:          13,
}

var binaryAssoc = map[pr.BinOp]Assoc{
	pr.OpPow:         AssocRight,
	pr.OpEq:          AssocUnspecified,
	pr.OpNe:          AssocUnspecified,
	pr.OpGt:          AssocUnspecified,
	pr.OpLt:          AssocUnspecified,
	pr.OpGte:         AssocUnspecified,
	pr.OpLte:         AssocUnspecified,
	pr.OpRegexSearch: AssocUnspecified,
	// everything else (Mul, Div*, Mod, Add, Sub, Coalesce, And, Or) is left-assoc
}

// Strength returns the binding strength of an expression. Higher binds
// tighter; a parent requires a child's rendered form to be parenthesized
// whenever the parent's context strength exceeds the child's strength
// (see needsParenthesis in the format package).
func Strength(e *pr.Expr) uint8 {
	switch e.Kind {
	case pr.KindUnary:
		return strengthUnary
	case pr.KindRange:
		return strengthRange
	case pr.KindBinary:
		if s, ok := binaryStrength[e.BinOp]; ok {
			return s
		}
		return StrengthAtomic
	case pr.KindFuncCall:
		return strengthCall
	case pr.KindFuncLit:
		return strengthFunc
	default:
		return StrengthAtomic
	}
}

// Associativity returns the tie-breaking direction for an expression kind.
// Only binary expressions have a meaningful associativity; everything
// else is unspecified, which always parenthesizes at equal strength.
func Associativity(e *pr.Expr) Assoc {
	if e.Kind != pr.KindBinary {
		return AssocUnspecified
	}
	if a, ok := binaryAssoc[e.BinOp]; ok {
		return a
	}
	return AssocLeft
}

// CanBindLeft reports whether this expression could be mistakenly read as
// a continuation of whatever precedes it — the "left-binding hazard": a
// prefix-capable unary (`==`, unary `+`, unary `-`) printed right after
// something that looks like an operand of a binary operator would instead
// be parsed as that binary operator's right-hand side (`f -x` read as
// `f - x`).
func CanBindLeft(e *pr.Expr) bool {
	if e.Kind != pr.KindUnary {
		return false
	}
	switch e.UnOp {
	case pr.UnEqSelf, pr.UnAdd, pr.UnNeg:
		return true
	default:
		return false
	}
}
